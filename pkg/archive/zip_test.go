package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/DigitPaint/sneakpeek-cli/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uploadTree struct {
	path string
	data string
}

var testTree = []uploadTree{
	{path: "index.html", data: "<html><body>preview</body></html>"},
	{path: "css/site.css", data: "body { color: red; }"},
	{path: "js/app.js", data: strings.Repeat("console.log('sneakpeek');\n", 512)},
	{path: "assets/img/logo.svg", data: "<svg></svg>"},
	{path: "node_modules/dep/index.js", data: "module.exports = {}"},
	{path: "empty", data: ""},
}

func createTree(t *testing.T, fs afero.Fs, root string) {
	for _, entry := range testTree {
		path := filepath.Join(root, filepath.FromSlash(entry.path))
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, afero.WriteFile(fs, path, []byte(entry.data), 0o644))
	}
	// empty directories do not show up in the archive
	require.NoError(t, fs.MkdirAll(filepath.Join(root, "nothing", "here"), 0o755))
}

func readArchive(t *testing.T, fs afero.Fs, path string) map[string]string {
	file, err := fs.Open(path)
	require.NoError(t, err)
	defer file.Close()
	info, err := file.Stat()
	require.NoError(t, err)

	reader, err := zip.NewReader(file, info.Size())
	require.NoError(t, err)

	content := make(map[string]string, len(reader.File))
	for _, f := range reader.File {
		assert.Equal(t, zip.Deflate, f.Method, "entry %s", f.Name)
		rdr, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rdr)
		require.NoError(t, err)
		require.NoError(t, rdr.Close())
		content[f.Name] = string(b)
	}
	return content
}

func names(content map[string]string) []string {
	result := make([]string, 0, len(content))
	for name := range content {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

func expectedNames(skip func(string) bool) []string {
	result := make([]string, 0, len(testTree))
	for _, entry := range testTree {
		if skip != nil && skip(entry.path) {
			continue
		}
		result = append(result, entry.path)
	}
	sort.Strings(result)
	return result
}

func memFs(t *testing.T) afero.Fs {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/tmp", 0o755))
	createTree(t, fs, "/site/public")
	return fs
}

func TestArchiveFlattened(t *testing.T) {
	fs := memFs(t)
	a := New(Fs(fs), TempDir("/tmp"))

	path, err := a.Archive(context.Background(), "/site/public")
	require.NoError(t, err)
	assert.Equal(t, "/tmp", filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, "."+Extension))

	content := readArchive(t, fs, path)
	assert.Equal(t, expectedNames(nil), names(content))
	for _, entry := range testTree {
		assert.Equal(t, entry.data, content[entry.path])
	}
	for name := range content {
		assert.False(t, strings.HasPrefix(name, "public"), "the packed directory must not be nested: %s", name)
		assert.False(t, strings.HasSuffix(name, "/"), "directory entries are not expected: %s", name)
	}
}

func TestArchiveUniqueNames(t *testing.T) {
	fs := memFs(t)
	a := New(Fs(fs), TempDir("/tmp"))

	first, err := a.Archive(context.Background(), "/site/public")
	require.NoError(t, err)
	second, err := a.Archive(context.Background(), "/site/public")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	// archives are left in place
	for _, p := range []string{first, second} {
		exists, err := afero.Exists(fs, p)
		require.NoError(t, err)
		assert.True(t, exists)
	}
}

func TestArchiveBestCompression(t *testing.T) {
	fs := memFs(t)
	path, err := New(Fs(fs), TempDir("/tmp")).Archive(context.Background(), "/site/public")
	require.NoError(t, err)

	info, err := fs.Stat(path)
	require.NoError(t, err)
	var raw int
	for _, entry := range testTree {
		raw += len(entry.data)
	}
	assert.Less(t, info.Size(), int64(raw/4))
}

func TestArchiveExcludes(t *testing.T) {
	fs := memFs(t)
	a := New(Fs(fs), TempDir("/tmp"), Excludes("node_modules", "**/*.svg"))

	path, err := a.Archive(context.Background(), "/site/public")
	require.NoError(t, err)

	content := readArchive(t, fs, path)
	assert.Equal(t, expectedNames(func(p string) bool {
		return strings.HasPrefix(p, "node_modules/") || strings.HasSuffix(p, ".svg")
	}), names(content))
}

func TestArchiveInvalidExclude(t *testing.T) {
	fs := memFs(t)
	_, err := New(Fs(fs), TempDir("/tmp"), Excludes("[")).Archive(context.Background(), "/site/public")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExclude))

	entries, err := afero.ReadDir(fs, "/tmp")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestArchiveErrors(t *testing.T) {
	fs := memFs(t)
	a := New(Fs(fs), TempDir("/tmp"))

	_, err := a.Archive(context.Background(), "/site/missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrArchive))

	entries, err := afero.ReadDir(fs, "/tmp")
	require.NoError(t, err)
	assert.Empty(t, entries, "a failed archive must not be left behind")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = a.Archive(ctx, "/site/public")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = New(Fs(afero.NewReadOnlyFs(fs)), TempDir("/tmp")).Archive(context.Background(), "/site/public")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCreate))
}

func TestArchiveOsFs(t *testing.T) {
	source := t.TempDir()
	target := t.TempDir()
	createTree(t, afero.NewOsFs(), source)

	path, err := New(TempDir(target)).Archive(context.Background(), source)
	require.NoError(t, err)

	reader, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer reader.Close()

	got := make([]string, 0, len(reader.File))
	for _, f := range reader.File {
		got = append(got, f.Name)
	}
	sort.Strings(got)
	assert.Equal(t, expectedNames(nil), got)

	rdr, err := reader.Open("js/app.js")
	require.NoError(t, err)
	var buf bytes.Buffer
	_, err = io.Copy(&buf, rdr)
	require.NoError(t, err)
	assert.Equal(t, testTree[2].data, buf.String())

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestArchiveSymlinkedSource(t *testing.T) {
	dir := t.TempDir()
	build := filepath.Join(dir, "build")
	createTree(t, afero.NewOsFs(), build)
	dist := filepath.Join(dir, "dist")
	if err := os.Symlink(build, dist); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	// links inside the tree are not followed
	require.NoError(t, os.Symlink(filepath.Join(build, "index.html"), filepath.Join(build, "alias.html")))

	for _, source := range []string{dist, dist + string(filepath.Separator)} {
		path, err := New(TempDir(t.TempDir())).Archive(context.Background(), source)
		require.NoError(t, err)

		content := readArchive(t, afero.NewOsFs(), path)
		assert.Equal(t, expectedNames(nil), names(content), "source %s", source)
		assert.Equal(t, testTree[0].data, content["index.html"])
	}
}

package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/DigitPaint/sneakpeek-cli/pkg/errors"
	"github.com/bmatcuk/doublestar/v4"
	units "github.com/docker/go-units"
	"github.com/klauspost/compress/flate"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	// Extension of the produced archives
	Extension = "zip"

	tempPattern = "sneakpeek-*." + Extension
)

var (
	// ErrCreate is returned when the temporary archive cannot be created
	ErrCreate = errors.New("cannot create archive file")

	// ErrArchive is returned when a source entry cannot be added to the archive
	ErrArchive = errors.New("archiving failed")

	// ErrExclude is returned for malformed exclude patterns
	ErrExclude = errors.New("invalid exclude pattern")
)

// Archiver packs directories into zip files
type Archiver struct {
	fs       afero.Fs
	tempDir  string
	excludes []string
	l        *zap.Logger
}

// New builds an Archiver
func New(opts ...Option) *Archiver {
	a := &Archiver{
		fs: afero.NewOsFs(),
		l:  zap.NewNop(),
	}
	for _, apply := range opts {
		apply(a)
	}
	return a
}

// Archive packs all files under sourcePath into a new temporary zip file and returns its path.
//
// The archive is not removed once written: the caller owns it.
func (a *Archiver) Archive(ctx context.Context, sourcePath string) (string, error) {
	for _, pattern := range a.excludes {
		if !doublestar.ValidatePattern(pattern) {
			return "", ErrExclude.Wrap(fmt.Errorf("%q: %w", pattern, doublestar.ErrBadPattern))
		}
	}

	zipfile, err := afero.TempFile(a.fs, a.tempDir, tempPattern)
	if err != nil {
		return "", ErrCreate.Wrap(err)
	}
	target := zipfile.Name()

	count, err := a.write(ctx, zipfile, sourcePath)
	if err != nil {
		_ = zipfile.Close()
		_ = a.fs.Remove(target)
		return "", err
	}
	if err = zipfile.Close(); err != nil {
		_ = a.fs.Remove(target)
		return "", ErrArchive.Wrap(err)
	}

	fields := []zap.Field{zap.String("source", sourcePath), zap.String("archive", target), zap.Int("files", count)}
	if info, err := a.fs.Stat(target); err == nil {
		fields = append(fields, zap.String("size", units.HumanSize(float64(info.Size()))))
	}
	a.l.Info("archive created", fields...)
	return target, nil
}

func (a *Archiver) write(ctx context.Context, w io.Writer, sourcePath string) (int, error) {
	if sourcePath == "" {
		return 0, ErrArchive.Wrap(fmt.Errorf("empty source path"))
	}
	archive := zip.NewWriter(w)
	archive.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	// the root is walked with a trailing separator so that a symlinked source directory is followed,
	// links found inside the tree are still skipped
	root := sourcePath
	if !os.IsPathSeparator(root[len(root)-1]) {
		root += string(filepath.Separator)
	}

	var count int
	err := afero.Walk(a.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err = ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		name := filepath.ToSlash(rel)
		if a.excluded(name) {
			a.l.Debug("excluded from archive", zap.String("entry", name))
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			if !info.IsDir() {
				a.l.Debug("skipping non regular file", zap.String("entry", name), zap.Stringer("mode", info.Mode()))
			}
			return nil
		}
		if err = a.addFile(archive, path, name, info); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return 0, ErrArchive.Wrap(err)
	}
	if err = archive.Close(); err != nil {
		return 0, ErrArchive.Wrap(err)
	}
	return count, nil
}

func (a *Archiver) addFile(archive *zip.Writer, path, name string, info os.FileInfo) error {
	file, err := a.fs.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = name
	header.Method = zip.Deflate

	writer, err := archive.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(writer, file)
	return err
}

func (a *Archiver) excluded(name string) bool {
	for _, pattern := range a.excludes {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

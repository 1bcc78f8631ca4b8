package upload

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/DigitPaint/sneakpeek-cli/pkg/model"
	units "github.com/docker/go-units"
	"github.com/fatih/color"
	"github.com/go-resty/resty/v2"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// multipart form fields expected by the sneakpeek API
const (
	fieldSHA            = "sha"
	fieldRelatedProject = "gitlab_project"
	fieldFile           = "file"

	archiveContentType = "application/zip"
)

const (
	msgUnauthorized = "unauthorized: the sneakpeek API rejected the API key (set --api-key or SNEAKPEEK_API_KEY)"
	msgUploadFailed = "upload failed"
)

// RevisionResolver knows the revision an upload is attached to
type RevisionResolver interface {
	Resolve(context.Context) model.RevisionInfo
}

// Uploader posts archives to the sneakpeek API.
//
// The multipart body is assembled in memory before it is sent, so the archive must fit in memory.
// Progress is shown once per Upload: a body sent again after a 307 or 308 redirect
// does not start a new indicator.
type Uploader struct {
	resolver   RevisionResolver
	httpClient *http.Client
	progress   ProgressFactory
	stdout     io.Writer
	stderr     io.Writer
	fs         afero.Fs
	userAgent  string
	l          *zap.Logger

	client *resty.Client
}

// New builds an Uploader
func New(opts ...Option) *Uploader {
	u := &Uploader{
		httpClient: &http.Client{},
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		fs:         afero.NewOsFs(),
		l:          zap.NewNop(),
	}
	for _, apply := range opts {
		apply(u)
	}
	if u.progress == nil {
		u.progress = Bar(u.stderr)
	}

	hc := *u.httpClient
	base := hc.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	hc.Transport = &progressTransport{base: base, newIndicator: u.progress}
	u.client = resty.NewWithClient(&hc).SetLogger(u.l.Sugar())
	if u.userAgent != "" {
		u.client.SetHeader("User-Agent", u.userAgent)
	}
	return u
}

// Upload posts the archive for the current revision of opts.Project.
//
// A revision without tag nor branch fails before any network call.
// Once the request is attempted, failures are reported on stderr and
// returned as ErrUnauthorized or ErrUploadFailed: see Reported.
// On success the response body is printed on stdout.
func (u *Uploader) Upload(ctx context.Context, archivePath string, opts model.UploadOptions) error {
	if u.resolver == nil {
		return ErrUnresolvedRef.Wrap(fmt.Errorf("no revision resolver configured"))
	}
	rev := u.resolver.Resolve(ctx)
	target, err := URL(opts.APIURL, opts.Project, rev)
	if err != nil {
		return err
	}

	archive, err := u.fs.Open(archivePath)
	if err != nil {
		return u.failed(err)
	}
	defer archive.Close()

	fields := []zap.Field{zap.String("url", target), zap.Stringer("revision", rev), zap.Bool("authenticated", opts.Authenticated())}
	if info, err := archive.Stat(); err == nil {
		fields = append(fields, zap.String("size", units.HumanSize(float64(info.Size()))))
	}
	u.l.Info("uploading archive", fields...)

	req := u.client.R().
		SetContext(withTracker(ctx, u.progress)).
		SetMultipartFormData(map[string]string{
			fieldSHA:            rev.SHA,
			fieldRelatedProject: opts.RelatedProject,
		}).
		SetMultipartField(fieldFile, filepath.Base(archivePath), archiveContentType, archive)
	if opts.Authenticated() {
		req.SetHeader("Authorization", opts.APIKey)
	}

	resp, err := req.Post(target)
	if err != nil {
		return u.failed(err)
	}

	u.l.Debug("sneakpeek API response", zap.Int("status", resp.StatusCode()), zap.Duration("time", resp.Time()))
	switch {
	case resp.StatusCode() == http.StatusUnauthorized:
		u.report(msgUnauthorized)
		return ErrUnauthorized.Wrap(fmt.Errorf("%s", resp.Status()))
	case !resp.IsSuccess():
		return u.failed(fmt.Errorf("%s: %s", resp.Status(), resp.String()))
	}

	body := resp.Body()
	if _, err = u.stdout.Write(body); err != nil {
		return err
	}
	if len(body) > 0 && body[len(body)-1] != '\n' {
		_, err = fmt.Fprintln(u.stdout)
	}
	return err
}

func (u *Uploader) failed(err error) error {
	u.report(msgUploadFailed, err)
	return ErrUploadFailed.Wrap(err)
}

func (u *Uploader) report(msg string, detail ...interface{}) {
	_, _ = color.New(color.FgRed).Fprintln(u.stderr, msg)
	if len(detail) > 0 {
		_, _ = fmt.Fprintln(u.stderr, detail...)
	}
}

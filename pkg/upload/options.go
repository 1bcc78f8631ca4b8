package upload

import (
	"io"
	"net/http"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Option configures an Uploader
type Option func(*Uploader)

// WithResolver sets the revision resolver. It is required
func WithResolver(r RevisionResolver) Option {
	return func(u *Uploader) {
		u.resolver = r
	}
}

// HTTPClient sets the http client used for the upload. It defaults to a client without timeout
func HTTPClient(c *http.Client) Option {
	return func(u *Uploader) {
		if c != nil {
			u.httpClient = c
		}
	}
}

// Progress sets the progress indicator factory. It defaults to a progress bar on stderr
func Progress(f ProgressFactory) Option {
	return func(u *Uploader) {
		if f != nil {
			u.progress = f
		}
	}
}

// Stdout sets where API responses are printed
func Stdout(w io.Writer) Option {
	return func(u *Uploader) {
		if w != nil {
			u.stdout = w
		}
	}
}

// Stderr sets where failures are reported
func Stderr(w io.Writer) Option {
	return func(u *Uploader) {
		if w != nil {
			u.stderr = w
		}
	}
}

// Fs sets the file system the archive is read from
func Fs(fs afero.Fs) Option {
	return func(u *Uploader) {
		if fs != nil {
			u.fs = fs
		}
	}
}

// UserAgent sets the User-Agent header
func UserAgent(ua string) Option {
	return func(u *Uploader) {
		u.userAgent = ua
	}
}

// Logger sets a logger
func Logger(l *zap.Logger) Option {
	return func(u *Uploader) {
		if l != nil {
			u.l = l
		}
	}
}

package upload

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Indicator displays upload progress
type Indicator interface {
	Add64(int64) error
}

// ProgressFactory creates an Indicator for an upload of total bytes.
// total is -1 when the size of the request is not known.
type ProgressFactory func(total int64) Indicator

// Bar returns a ProgressFactory drawing a progress bar on w
func Bar(w io.Writer) ProgressFactory {
	return func(total int64) Indicator {
		return progressbar.NewOptions64(total,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription("uploading"),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(30),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	}
}

// NoProgress returns a ProgressFactory that shows nothing
func NoProgress() ProgressFactory {
	return func(int64) Indicator { return silent{} }
}

type silent struct{}

func (silent) Add64(int64) error { return nil }

// tracker follows the progress of a single upload, across the round trips of its request
type tracker struct {
	newIndicator ProgressFactory
	indicator    Indicator
	loaded       int64
}

// onProgress creates the indicator on the first event, then advances it by what was sent since the previous event.
// A body sent again after a redirect only moves the indicator once it goes past what was already shown.
func (t *tracker) onProgress(loaded, total int64) {
	if t.indicator == nil {
		t.indicator = t.newIndicator(total)
	}
	if loaded <= t.loaded {
		return
	}
	delta := loaded - t.loaded
	t.loaded = loaded
	_ = t.indicator.Add64(delta)
}

type trackerKey struct{}

// withTracker attaches a single progress tracker to all the requests made with ctx
func withTracker(ctx context.Context, newIndicator ProgressFactory) context.Context {
	return context.WithValue(ctx, trackerKey{}, &tracker{newIndicator: newIndicator})
}

type countingReader struct {
	io.ReadCloser
	total   int64
	loaded  int64
	tracker *tracker
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.ReadCloser.Read(p)
	if n > 0 {
		r.loaded += int64(n)
		r.tracker.onProgress(r.loaded, r.total)
	}
	return n, err
}

// progressTransport reports how much of each request body has been handed to the underlying transport
type progressTransport struct {
	base         http.RoundTripper
	newIndicator ProgressFactory
}

func (t *progressTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return t.base.RoundTrip(req)
	}
	total := req.ContentLength
	if total <= 0 {
		total = -1
	}
	tr, ok := req.Context().Value(trackerKey{}).(*tracker)
	if !ok {
		tr = &tracker{newIndicator: t.newIndicator}
	}
	out := req.Clone(req.Context())
	out.Body = &countingReader{
		ReadCloser: req.Body,
		total:      total,
		tracker:    tr,
	}
	return t.base.RoundTrip(out)
}

package upload

import "github.com/DigitPaint/sneakpeek-cli/pkg/errors"

var (
	// ErrUnresolvedRef is returned before any network call when the revision is neither a tag nor a branch
	ErrUnresolvedRef = errors.New("cannot build upload URL")

	// ErrAPIURL is returned for a malformed API base URL
	ErrAPIURL = errors.New("invalid API URL")

	// ErrUnauthorized is returned after the API answered 401. The failure has already been reported
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUploadFailed is returned after any other upload failure. The failure has already been reported
	ErrUploadFailed = errors.New("upload failed")
)

// Reported tells if err has already been printed out by the Uploader
func Reported(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrUploadFailed)
}

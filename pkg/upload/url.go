package upload

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/DigitPaint/sneakpeek-cli/pkg/model"
)

// URL builds the upload endpoint for a project and a revision.
//
// Project and ref are escaped as single path segments. URL fails when the
// revision has neither a tag nor a branch.
func URL(apiURL, project string, rev model.RevisionInfo) (string, error) {
	collection, err := rev.RefType.Plural()
	if err != nil {
		return "", ErrUnresolvedRef.Wrap(err)
	}
	base := strings.TrimRight(apiURL, "/")
	u, err := url.Parse(base)
	if err != nil {
		return "", ErrAPIURL.Wrap(err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", ErrAPIURL.Wrap(fmt.Errorf("%q is not an absolute URL", apiURL))
	}
	return base +
		"/projects/" + url.PathEscape(project) +
		"/" + collection +
		"/" + url.PathEscape(rev.Ref), nil
}

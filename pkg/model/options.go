package model

// DefaultAPIURL is the sneakpeek API used when nothing else is configured
const DefaultAPIURL = "https://api.sneakpeek.io"

// UploadOptions carries everything needed for a single upload run.
//
// It is built once per invocation and passed by value.
type UploadOptions struct {
	Path           string   `json:"path" yaml:"path"`                             // local directory to package
	Project        string   `json:"project" yaml:"project"`                       // sneakpeek project
	RelatedProject string   `json:"gitlabProject" yaml:"gitlabProject"`           // "group/name" identifier, forwarded as-is
	APIURL         string   `json:"apiURL" yaml:"apiURL"`                         // base URL of the sneakpeek API
	APIKey         string   `json:"-" yaml:"-"`                                   // sent verbatim as Authorization header
	Excludes       []string `json:"excludes,omitempty" yaml:"excludes,omitempty"` // glob patterns left out of the archive
}

// Authenticated is true when an API key should be sent along
func (o UploadOptions) Authenticated() bool {
	return o.APIKey != ""
}

// Package revision resolves the commit and the reference (tag or branch) being uploaded.
//
// When running in CI, everything comes from the environment set by the runner.
// Otherwise git is queried in the working directory. Lookups are best effort:
// a value that cannot be determined is simply absent from the result.
package revision

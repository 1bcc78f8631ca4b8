package revision

import (
	"context"
	"strings"

	"github.com/DigitPaint/sneakpeek-cli/pkg/model"
	"go.uber.org/zap"
)

// environment variables set by the CI runner
const (
	envCI          = "CI"
	envBuildRef    = "CI_BUILD_REF"
	envBuildTag    = "CI_BUILD_TAG"
	envBuildBranch = "CI_BUILD_REF_NAME"

	// current names for the deprecated CI_BUILD_* variables
	envCommitSHA    = "CI_COMMIT_SHA"
	envCommitTag    = "CI_COMMIT_TAG"
	envCommitBranch = "CI_COMMIT_REF_NAME"
)

// detachedHead is what git reports as the branch name when HEAD is not on a branch
const detachedHead = "HEAD"

// Resolver determines the revision info for the current checkout
type Resolver struct {
	lookupEnv func(string) (string, bool)
	dir       string
	run       Runner
	l         *zap.Logger
}

// New builds a Resolver
func New(opts ...Option) *Resolver {
	r := &Resolver{
		lookupEnv: defaultLookupEnv,
		run:       GitRunner,
		l:         zap.NewNop(),
	}
	for _, apply := range opts {
		apply(r)
	}
	return r
}

// Resolve returns the revision info, from CI variables when running in CI, from git otherwise.
//
// Resolve never fails: fields that could not be determined are left empty and
// the ref type is RefTypeUnresolved when neither a tag nor a branch is known.
func (r *Resolver) Resolve(ctx context.Context) model.RevisionInfo {
	var info model.RevisionInfo
	if r.InCI() {
		info = r.fromCI()
	} else {
		info = r.fromGit(ctx)
	}
	r.l.Debug("resolved revision",
		zap.Bool("ci", r.InCI()),
		zap.String("sha", info.SHA),
		zap.String("reftype", string(info.RefType)),
		zap.String("ref", info.Ref),
	)
	return info
}

// InCI tells if the CI indicator is set
func (r *Resolver) InCI() bool {
	_, ok := r.env(envCI)
	return ok
}

func (r *Resolver) fromCI() model.RevisionInfo {
	info := model.RevisionInfo{}
	info.SHA, _ = r.env(envBuildRef, envCommitSHA)

	if tag, ok := r.env(envBuildTag, envCommitTag); ok {
		info.RefType = model.RefTypeTag
		info.Ref = tag
		return info
	}
	if branch, ok := r.env(envBuildBranch, envCommitBranch); ok {
		info.RefType = model.RefTypeBranch
		info.Ref = branch
	}
	return info
}

func (r *Resolver) fromGit(ctx context.Context) model.RevisionInfo {
	info := model.RevisionInfo{}
	info.SHA, _ = r.headSHA(ctx)

	if tag, ok := r.headTag(ctx); ok {
		info.RefType = model.RefTypeTag
		info.Ref = tag
		return info
	}
	if branch, ok := r.headBranch(ctx); ok {
		info.RefType = model.RefTypeBranch
		info.Ref = branch
	}
	return info
}

func (r *Resolver) headSHA(ctx context.Context) (string, bool) {
	out, ok := r.git(ctx, "show", "-s", "--format=%H", "HEAD")
	if !ok {
		return "", false
	}
	sha := strings.Trim(out, `"'`)
	return sha, sha != ""
}

// headTag looks for a tag pointing exactly at HEAD. Not finding one is the common case.
func (r *Resolver) headTag(ctx context.Context) (string, bool) {
	return r.git(ctx, "describe", "--exact-match", "--tags", "HEAD")
}

func (r *Resolver) headBranch(ctx context.Context) (string, bool) {
	branch, ok := r.git(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if !ok || branch == detachedHead {
		return "", false
	}
	return branch, true
}

// git runs a single git query. A failure only makes the value absent.
func (r *Resolver) git(ctx context.Context, args ...string) (string, bool) {
	out, err := r.run(ctx, r.dir, args...)
	if err != nil {
		r.l.Debug("git lookup failed", zap.Strings("args", args), zap.Error(err))
		return "", false
	}
	out = strings.TrimSpace(out)
	return out, out != ""
}

// env returns the first non-empty value among keys
func (r *Resolver) env(keys ...string) (string, bool) {
	for _, key := range keys {
		if v, ok := r.lookupEnv(key); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

package revision

import (
	"os"

	"go.uber.org/zap"
)

// Option configures a Resolver
type Option func(*Resolver)

// Env sets the environment lookup function. It defaults to os.LookupEnv
func Env(lookup func(string) (string, bool)) Option {
	return func(r *Resolver) {
		if lookup == nil {
			r.lookupEnv = os.LookupEnv
			return
		}
		r.lookupEnv = lookup
	}
}

// WorkDir sets the directory where git is queried. It defaults to the current directory
func WorkDir(dir string) Option {
	return func(r *Resolver) {
		r.dir = dir
	}
}

// WithRunner substitutes the git runner
func WithRunner(run Runner) Option {
	return func(r *Resolver) {
		if run == nil {
			r.run = GitRunner
			return
		}
		r.run = run
	}
}

// Logger sets a logger. Failed lookups are logged at debug level
func Logger(l *zap.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.l = l
		}
	}
}

package archive

import (
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Option configures an Archiver
type Option func(*Archiver)

// Fs sets the file system to read sources from and write the archive to. It defaults to the OS file system
func Fs(fs afero.Fs) Option {
	return func(a *Archiver) {
		if fs != nil {
			a.fs = fs
		}
	}
}

// TempDir sets the directory receiving archives. It defaults to the OS temp dir
func TempDir(dir string) Option {
	return func(a *Archiver) {
		a.tempDir = dir
	}
}

// Excludes sets glob patterns (with ** support) for entries left out of the archive.
// Patterns are matched against slash-separated paths relative to the packed directory.
func Excludes(patterns ...string) Option {
	return func(a *Archiver) {
		a.excludes = append(a.excludes, patterns...)
	}
}

// Logger sets a logger
func Logger(l *zap.Logger) Option {
	return func(a *Archiver) {
		if l != nil {
			a.l = l
		}
	}
}

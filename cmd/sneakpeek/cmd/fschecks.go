// Copyright © 2026 DigitPaint

package cmd

import (
	"github.com/DigitPaint/sneakpeek-cli/pkg/errors"
	"github.com/spf13/afero"
)

var (
	// ErrPathNotAccessible is returned when the directory to upload cannot be stat'ed
	ErrPathNotAccessible = errors.New("cannot access path")

	// ErrNotDirectory is returned when the path to upload is not a directory
	ErrNotDirectory = errors.New("not a directory")
)

// sourceFs is the file system holding the directories to upload
var sourceFs = afero.NewOsFs()

// validateSourcePath checks that path exists and is a directory
func validateSourcePath(fs afero.Fs, path string) error {
	isDir, err := afero.IsDir(fs, path)
	if err != nil {
		return ErrPathNotAccessible.Wrap(err)
	}
	if !isDir {
		return ErrNotDirectory.Wrap(errors.New(path))
	}
	return nil
}

package revision

import (
	"context"
	"os"

	"github.com/DigitPaint/sneakpeek-cli/pkg/errors"
	"gotest.tools/v3/icmd"
)

// ErrGit is returned by GitRunner when git cannot be run or exits with a non-zero status
var ErrGit = errors.New("git command failed")

var defaultLookupEnv = os.LookupEnv

// Runner runs git with args in dir and returns its standard output.
type Runner func(ctx context.Context, dir string, args ...string) (string, error)

// GitRunner executes the git binary directly, without going through a shell.
func GitRunner(ctx context.Context, dir string, args ...string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	cmd := icmd.Command("git", args...)
	cmd.Dir = dir
	res := icmd.RunCmd(cmd)
	if err := res.Compare(icmd.Success); err != nil {
		return "", ErrGit.Wrap(err)
	}
	return res.Stdout(), nil
}

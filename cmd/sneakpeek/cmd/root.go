// Copyright © 2026 DigitPaint

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sneakpeek",
	Short: "Sneakpeek uploads previews of your builds",
	Long: `Sneakpeek packages a directory into a zip archive and uploads it to the sneakpeek API.

Every upload is attached to the current git tag or branch and commit. In CI, these are taken
from the CI_BUILD_* (or CI_COMMIT_*) environment variables, otherwise git is queried.
`,
	SilenceErrors: false,
}

var config *CLIConfig

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// cobra has already printed the error and a usage hint
		stop()
		osExit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	addLogLevel(rootCmd)
}

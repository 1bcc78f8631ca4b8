package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/DigitPaint/sneakpeek-cli/pkg/dlogger"
	"github.com/DigitPaint/sneakpeek-cli/pkg/model"
	"github.com/DigitPaint/sneakpeek-cli/pkg/upload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type flagsT struct {
	upload struct {
		project        string
		relatedProject string
		apiURL         string
		apiKey         string
		excludes       []string
		noProgress     bool
	}
	root struct {
		logLevel string
	}
	doc struct {
		docTarget string
	}
}

var sneakpeekFlags = flagsT{}

func addProjectFlag(cmd *cobra.Command) string {
	c := "project"
	cmd.Flags().StringVarP(&sneakpeekFlags.upload.project, c, "p", "", "The sneakpeek project receiving the upload")
	return c
}

func addRelatedProjectFlag(cmd *cobra.Command) string {
	c := "gitlab-project"
	cmd.Flags().StringVarP(&sneakpeekFlags.upload.relatedProject, c, "g", "", `The related repository, as "group/name"`)
	return c
}

func addAPIURLFlag(cmd *cobra.Command) string {
	c := "api-url"
	cmd.Flags().StringVar(&sneakpeekFlags.upload.apiURL, c, "",
		fmt.Sprintf("The sneakpeek API URL (defaults to $SNEAKPEEK_API_URL or %s)", model.DefaultAPIURL))
	return c
}

func addAPIKeyFlag(cmd *cobra.Command) string {
	c := "api-key"
	cmd.Flags().StringVar(&sneakpeekFlags.upload.apiKey, c, "", "The sneakpeek API key (defaults to $SNEAKPEEK_API_KEY)")
	return c
}

func addExcludeFlag(cmd *cobra.Command) string {
	c := "exclude"
	cmd.Flags().StringSliceVarP(&sneakpeekFlags.upload.excludes, c, "x", nil,
		`Glob patterns of files to leave out of the archive, relative to the uploaded directory (e.g. "**/*.map")`)
	return c
}

func addNoProgressFlag(cmd *cobra.Command) string {
	c := "no-progress"
	cmd.Flags().BoolVar(&sneakpeekFlags.upload.noProgress, c, false, "Do not display the upload progress bar")
	return c
}

func addLogLevel(cmd *cobra.Command) string {
	loglevel := "loglevel"
	cmd.PersistentFlags().StringVar(&sneakpeekFlags.root.logLevel, loglevel, dlogger.LogLevelWarn,
		"The logging level. Levels by increasing order of verbosity: none, error, warn, info, debug")
	return loglevel
}

func addTargetFlag(cmd *cobra.Command) string {
	c := "target-dir"
	cmd.Flags().StringVar(&sneakpeekFlags.doc.docTarget, c, ".", "The target directory where to generate the markdown documentation")
	return c
}

/** combined config (file + env var) and parameters (pflags) */

type cliOptionInputs struct {
	config *CLIConfig
	params *flagsT
}

func newCliOptionInputs(config *CLIConfig, params *flagsT) *cliOptionInputs {
	return &cliOptionInputs{
		config: config,
		params: params,
	}
}

// uploadOptions merges flags over the configuration. Flags take precedence when set.
func (in *cliOptionInputs) uploadOptions(path string) (model.UploadOptions, error) {
	source, err := sanitizePath(path)
	if err != nil {
		return model.UploadOptions{}, fmt.Errorf("failed to sanitize path: %s: %w", path, err)
	}
	opts := model.UploadOptions{
		Path:           source,
		Project:        in.params.upload.project,
		RelatedProject: in.params.upload.relatedProject,
		APIURL:         in.config.APIURL,
		APIKey:         in.config.APIKey,
		Excludes:       append([]string(nil), in.params.upload.excludes...),
	}
	if in.params.upload.apiURL != "" {
		opts.APIURL = in.params.upload.apiURL
	}
	if in.params.upload.apiKey != "" {
		opts.APIKey = in.params.upload.apiKey
	}
	if opts.APIURL == "" {
		opts.APIURL = model.DefaultAPIURL
	}
	return opts, nil
}

func (in *cliOptionInputs) progress(cmd *cobra.Command) upload.ProgressFactory {
	if in.params.upload.noProgress {
		return upload.NoProgress()
	}
	return upload.Bar(cmd.ErrOrStderr())
}

func (in *cliOptionInputs) getLogger() *zap.Logger {
	if in.config.logger == nil {
		return zap.NewNop()
	}
	return in.config.logger
}

/** misc util */

func sanitizePath(path string) (string, error) {
	return filepath.Abs(filepath.Clean(path))
}

// requireFlags sets a flag (local to the command or inherited) as required
func requireFlags(cmd *cobra.Command, flags ...string) {
	for _, flag := range flags {
		err := cmd.MarkFlagRequired(flag)
		if err != nil {
			err = cmd.MarkPersistentFlagRequired(flag)
		}
		if err != nil {
			wrapFatalln(fmt.Sprintf("error attempting to mark the required flag %q", flag), err)
			return
		}
	}
}

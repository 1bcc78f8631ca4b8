package cmd

import (
	"fmt"

	"github.com/DigitPaint/sneakpeek-cli/pkg/archive"
	"github.com/DigitPaint/sneakpeek-cli/pkg/revision"
	"github.com/DigitPaint/sneakpeek-cli/pkg/upload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// uploadCmd packs a directory and uploads it to the sneakpeek API
var uploadCmd = &cobra.Command{
	Use:   "upload <path>",
	Short: "Upload a directory",
	Long: `Upload a directory to sneakpeek, attached to the current tag or branch.

The content of the directory is zipped (the directory itself is not part of the archive)
then posted to {api-url}/projects/{project}/{branches|tags}/{ref}. The API response
is printed on stdout.

The process exits with a non-zero status when the path is invalid, when archiving fails
or when the upload is rejected.`,
	Example: `  sneakpeek upload ./build -p my-site -g frontend/my-site
  SNEAKPEEK_API_KEY=xxx sneakpeek upload dist --project docs --gitlab-project group/docs --exclude "**/*.map"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if config == nil {
			return
		}
		ctx := cmd.Context()
		inputs := newCliOptionInputs(config, &sneakpeekFlags)
		logger := inputs.getLogger()

		opts, err := inputs.uploadOptions(args[0])
		if err != nil {
			wrapFatalln("invalid path", err)
			return
		}
		if err = validateSourcePath(sourceFs, opts.Path); err != nil {
			wrapFatalln("invalid path", err)
			return
		}

		archivePath, err := archive.New(
			archive.Fs(sourceFs),
			archive.Excludes(opts.Excludes...),
			archive.Logger(logger),
		).Archive(ctx, opts.Path)
		if err != nil {
			wrapFatalln("failed to archive", fmt.Errorf("%s: %w", opts.Path, err))
			return
		}

		uploader := upload.New(
			upload.WithResolver(revision.New(revision.Logger(logger))),
			upload.Fs(sourceFs),
			upload.Progress(inputs.progress(cmd)),
			upload.Stdout(cmd.OutOrStdout()),
			upload.Stderr(cmd.ErrOrStderr()),
			upload.UserAgent("sneakpeek-cli/"+NewVersionInfo().Version),
			upload.Logger(logger),
		)
		err = uploader.Upload(ctx, archivePath, opts)
		switch {
		case err == nil:
			logger.Info("upload complete", zap.String("project", opts.Project))
		case upload.Reported(err):
			osExit(exitUploadFailed)
		default:
			wrapFatalln("upload aborted", err)
		}
	},
}

func init() {
	requireFlags(uploadCmd,
		addProjectFlag(uploadCmd),
		addRelatedProjectFlag(uploadCmd),
	)
	addAPIURLFlag(uploadCmd)
	addAPIKeyFlag(uploadCmd)
	addExcludeFlag(uploadCmd)
	addNoProgressFlag(uploadCmd)

	rootCmd.AddCommand(uploadCmd)
}

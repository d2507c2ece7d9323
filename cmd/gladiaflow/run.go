package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kbukum/gladiaflow/storage/local"
	"github.com/kbukum/gladiaflow/storage/s3"
)

func newRunCmd(root *rootOptions) *cobra.Command {
	var (
		itemsPath      string
		baseDir        string
		continueOnFail bool
	)

	cmd := &cobra.Command{
		Use:   "run --items <file>",
		Short: "Transcribe a batch of items and print the results as JSON",
		Long: `Reads a YAML or JSON batch file:

  continueOnFail: true
  items:
    - params: {audioSource: url, audioUrl: "https://example.com/a.mp3"}
    - params: {audioSource: binaryData, options: {diarization: true}}
      binary:
        data: {path: recordings/b.wav}
    - params: {audioSource: binaryData}
      binary:
        data: {key: calls/c.mp3}

Binary paths resolve against --base-dir (default: storage.base_path).
Binary keys resolve against storage.s3.bucket.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			if baseDir != "" {
				cfg.Storage.BasePath = baseDir
			}

			f, err := os.Open(itemsPath)
			if err != nil {
				return fmt.Errorf("open batch file: %w", err)
			}
			batch, err := decodeBatch(f)
			_ = f.Close()
			if err != nil {
				return err
			}

			app, err := newApplication(cfg, root.appOptions(cmd)...)
			if err != nil {
				return err
			}
			var src binarySources
			if src.files, err = local.NewStore(cfg.Storage.Config); err != nil {
				return err
			}
			if cfg.Storage.S3.Enabled() {
				client, err := s3.NewClient(cmd.Context(), cfg.Storage.S3)
				if err != nil {
					return err
				}
				src.objects = s3.NewStore(client, cfg.Storage.S3.Bucket, cfg.Storage.MaxFileSize)
			}
			items, binaries, err := batch.prepare(src, cfg.Execution.WaitForCompletion)
			if err != nil {
				return err
			}

			cof := cfg.Execution.ContinueOnFail
			if batch.ContinueOnFail != nil {
				cof = *batch.ContinueOnFail
			}
			if cmd.Flags().Changed("continue-on-fail") {
				cof = continueOnFail
			}

			return app.RunTask(cmd.Context(), func(ctx context.Context) error {
				results, err := app.executor(binaries).Execute(ctx, items, cof)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			})
		},
	}

	cmd.Flags().StringVarP(&itemsPath, "items", "i", "", "batch file (YAML or JSON)")
	cmd.Flags().StringVar(&baseDir, "base-dir", "", "directory binary paths resolve against")
	cmd.Flags().BoolVar(&continueOnFail, "continue-on-fail", false, "turn item errors into error results instead of aborting")
	_ = cmd.MarkFlagRequired("items")
	return cmd
}

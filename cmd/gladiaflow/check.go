package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/gladiaflow/httpclient"
	"github.com/kbukum/gladiaflow/transcription"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the Gladia API key with a credential test",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			app, err := newApplication(cfg, root.appOptions(cmd)...)
			if err != nil {
				return err
			}
			return app.RunTask(cmd.Context(), func(ctx context.Context) error {
				if err := checkCredentials(ctx, app.service); err != nil {
					return fmt.Errorf("credential test failed against %s: %w", cfg.Gladia.BaseURL, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "credentials OK (%s)\n", cfg.Gladia.BaseURL)
				return nil
			})
		},
	}
}

// checkCredentials runs svc's credential test and names the usual causes
// of a failure.
func checkCredentials(ctx context.Context, svc transcription.Service) error {
	checker, ok := svc.(transcription.CredentialChecker)
	if !ok {
		if !svc.IsAvailable(ctx) {
			return errors.New("service unavailable")
		}
		return nil
	}
	err := checker.CheckCredentials(ctx)
	switch {
	case err == nil:
		return nil
	case httpclient.IsAuth(err):
		return fmt.Errorf("API key rejected: %w", err)
	case httpclient.IsNotFound(err):
		return fmt.Errorf("no transcription endpoint at this base URL: %w", err)
	default:
		return err
	}
}

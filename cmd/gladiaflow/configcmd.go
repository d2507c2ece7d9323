package main

import (
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/kbukum/gladiaflow/util"
)

const visibleKeyPrefix = 4

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with secrets masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			cfg.ApplyDefaults()
			if cfg.Gladia.APIKey != "" {
				cfg.Gladia.APIKey = util.MaskSecret(cfg.Gladia.APIKey, visibleKeyPrefix)
			}
			if cfg.Storage.S3.SecretKey != "" {
				cfg.Storage.S3.SecretKey = util.MaskSecret(cfg.Storage.S3.SecretKey, 0)
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	})
	return cmd
}

// Command gladiaflow runs batches of transcription items against the Gladia
// API, either once from a batch file or behind an HTTP server.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kbukum/gladiaflow/bootstrap"
	"github.com/kbukum/gladiaflow/logger"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	configFile string
	envFile    string
}

func (o *rootOptions) load() (*AppConfig, error) {
	return loadConfig(o.configFile, o.envFile)
}

// appOptions keeps stdout clean for command output.
func (o *rootOptions) appOptions(cmd *cobra.Command) []bootstrap.Option {
	return []bootstrap.Option{bootstrap.WithSummaryWriter(cmd.ErrOrStderr())}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "gladiaflow",
		Short:         "Gladia transcription connector",
		Long:          "Submit audio to the Gladia transcription API, optionally wait for the result, and process batches with per-item error isolation.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default: discovered config.yml)")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", "", ".env file (default: discovered .env)")

	root.AddCommand(
		newRunCmd(opts),
		newCheckCmd(opts),
		newServeCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Error("Command failed", logger.Fields("error", err.Error()))
		os.Exit(1)
	}
}

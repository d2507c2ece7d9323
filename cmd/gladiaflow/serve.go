package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/gladiaflow/server"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve POST /v1/executions over HTTP",
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
			// Applied after defaults so 0 can select a free port.
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			srv := server.New(cfg.Server, app.Logger)
			srv.ApplyDefaults(cfg.Name, app.Components.HealthAll)
			srv.RegisterExecutions(app.orchestrator, server.ExecutionDefaults{
				PollPolicy:        cfg.Polling.Policy(),
				ContinueOnFail:    cfg.Execution.ContinueOnFail,
				WaitForCompletion: cfg.Execution.WaitForCompletion,
			})
			if err := app.RegisterComponent(server.NewComponent(srv)); err != nil {
				return err
			}
			return app.Run(cmd.Context())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides server.port)")
	return cmd
}

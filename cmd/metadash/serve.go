package main

import (
	"github.com/spf13/cobra"

	"metadash/internal/app"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the interactive dashboard",
		Long: `Serves the dashboard page with year-range and journal filters, the chart
frames, CSV and Excel downloads of the filtered rows, /api/health and
/metrics. Stops on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, closeFn, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			application, err := app.New(env.cfg, env.logger, env.providers)
			if err != nil {
				return err
			}
			return application.Run(cmd.Context())
		},
	}
}

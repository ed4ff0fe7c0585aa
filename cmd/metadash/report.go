package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"metadash/internal/infrastructure"
	"metadash/internal/operations"
	"metadash/internal/services"
)

func newReportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Render the six static charts",
		Long: `Loads and cleans the dataset once, then writes, in order:

  publications_by_year.png
  publications_heatmap.png
  top_journals.png
  top_sources.png
  titles_wordcloud.png
  cumulative_publications.png

The first chart that fails to render stops the run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, closeFn, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			defer closeFn()
			return runReport(cmd, env)
		},
	}
}

func runReport(cmd *cobra.Command, env *environment) error {
	svc := services.NewReportService(env.paths, services.ReportOptions{
		MaxRows:  env.cfg.Dataset.BatchMaxRows,
		MinYear:  env.cfg.Report.MinYear,
		MaxWords: env.cfg.Report.MaxWords,
	}, env.logger, env.providers.Metrics)

	result, err := svc.Run(cmd.Context())
	if err != nil {
		// Step failures are logged by the operation manager
		var opErr *operations.OperationError
		if !errors.As(err, &opErr) {
			infrastructure.WithError(env.logger, err).Error("report failed")
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Kept %d of %d rows (%d missing title or publish time, %d unparseable dates)\n",
		result.Report.Kept, result.Report.RawRows, result.Report.DroppedMissing, result.Report.DroppedUnparsable)
	for _, path := range result.Artifacts {
		fmt.Fprintf(out, "wrote %s\n", path)
	}
	return nil
}

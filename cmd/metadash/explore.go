package main

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"metadash/internal/exporter"
	"metadash/internal/services"
	"metadash/pkg/contracts/domain"
)

// headCellWidth keeps wide abstract cells from wrapping the head preview
const headCellWidth = 28

func newExploreCmd(opts *rootOptions) *cobra.Command {
	var (
		headRows   int
		exportPath string
	)

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Print a console profile of the dataset",
		Long: `Prints the shape and columns of the raw table, missing values per column,
the first rows, summary statistics of the numeric columns and how many rows
the cleaner dropped. --export writes the cleaned rows to a CSV file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, closeFn, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			svc := services.NewExploreService(env.logger, headRows)
			exploration, err := svc.Explore(cmd.Context(), env.paths.DataFile, env.cfg.Dataset.BatchMaxRows)
			if err != nil {
				return err
			}

			if err := printExploration(cmd.OutOrStdout(), exploration); err != nil {
				return err
			}

			if exportPath != "" {
				writer := exporter.NewCSVWriter(env.logger)
				if err := writer.WriteFile(exportPath, exporter.WriteOptions{
					Headers: domain.PaperColumns,
					Records: exporter.PaperRecords(exploration.Papers),
				}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nCleaned rows written to %s\n", exportPath)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&headRows, "head", 5, "number of rows in the preview")
	cmd.Flags().StringVar(&exportPath, "export", "", "write the cleaned rows to this CSV file")
	return cmd
}

// printExploration writes the console report
func printExploration(w io.Writer, e *services.Exploration) error {
	pw := &printer{w: w}

	pw.printf("Dataset: %s\n", e.Source)
	pw.printf("Shape: %d rows x %d columns\n", e.Profile.Rows, len(e.Profile.Columns))

	pw.section("Columns")
	for _, name := range e.Profile.Columns {
		pw.printf("  %s\n", name)
	}

	pw.section("Missing values")
	missing := exporter.TextTable{Headers: []string{"column", "missing"}}
	for _, m := range e.Profile.Missing {
		missing.Rows = append(missing.Rows, []string{m.Column, strconv.Itoa(m.Missing)})
	}
	pw.table(missing)

	pw.section(fmt.Sprintf("First %d rows", len(e.Head)))
	pw.table(exporter.TextTable{Headers: e.Header, Rows: e.Head, MaxCellWidth: headCellWidth})

	pw.section("Numeric columns")
	if len(e.Profile.Numeric) == 0 {
		pw.printf("  (none)\n")
	} else {
		stats := exporter.TextTable{
			Headers: []string{"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max"},
		}
		for _, n := range e.Profile.Numeric {
			stats.Rows = append(stats.Rows, []string{
				n.Column,
				strconv.Itoa(n.Count),
				formatStat(n.Mean),
				formatStat(n.Std),
				formatStat(n.Min),
				formatStat(n.P25),
				formatStat(n.P50),
				formatStat(n.P75),
				formatStat(n.Max),
			})
		}
		pw.table(stats)
	}

	pw.section("Cleaning")
	pw.printf("  raw rows:                %d\n", e.Report.RawRows)
	pw.printf("  dropped (missing):       %d\n", e.Report.DroppedMissing)
	pw.printf("  dropped (unparsed date): %d\n", e.Report.DroppedUnparsable)
	pw.printf("  kept:                    %d\n", e.Report.Kept)

	return pw.err
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// printer remembers the first write error so the report reads linearly
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) section(title string) {
	p.printf("\n%s:\n", title)
}

func (p *printer) table(t exporter.TextTable) {
	if p.err != nil {
		return
	}
	_, p.err = t.WriteTo(p.w)
}

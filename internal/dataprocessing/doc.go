// Package dataprocessing turns a bibliographic metadata CSV into the
// aggregate views behind the charts and the dashboard.
//
// # Architecture
//
// The package is organized as a synchronous pipeline of three stages, each
// consuming a complete in-memory value:
//
//  1. Loader: reads the header and a bounded prefix of rows (LoadCSV)
//  2. Cleaner: projects the used columns, drops incomplete rows, parses
//     publication dates and derives year, month and abstract word count (Clean)
//  3. Aggregator: year series, year×month and journal×year grids, top-N
//     rankings, title word frequencies and the cumulative timeline
//
// Pipeline composes the first two stages with tracing and metrics, Summarizer
// computes every aggregate at once, and DatasetCache memoizes a cleaned
// dataset for the dashboard until the source file changes.
//
// # Usage
//
//	table, err := dataprocessing.LoadCSV(ctx, "metadata.csv", 10000)
//	if err != nil {
//	    return err
//	}
//	papers, report, err := dataprocessing.Clean(ctx, table)
//	if err != nil {
//	    return err
//	}
//	years := dataprocessing.YearCounts(papers, 2000)
//	journals := dataprocessing.TopJournals(papers, 15)
//
// Aggregates are deterministic: ties are broken by first appearance or by
// label, so repeated runs over the same input produce identical output.
package dataprocessing

// Package exporter writes sets of cleaned papers as downloadable files.
//
// CSVWriter handles plain CSV output with an optional UTF-8 BOM for Excel.
// PapersCSV and PapersXLSX produce the dashboard's filtered extract in the
// column order of domain.PaperColumns; an empty paper set still produces a
// valid file holding only the header row.
//
// Example usage:
//
//	var buf bytes.Buffer
//	if err := exporter.PapersCSV(&buf, filtered); err != nil {
//		return err
//	}
package exporter

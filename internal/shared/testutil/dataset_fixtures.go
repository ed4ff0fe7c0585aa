package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

// MetadataHeader is the header of the fixture CSV files. It carries more
// columns than the cleaner keeps, like the real metadata.csv.
var MetadataHeader = []string{
	"cord_uid", "sha", "source_x", "title", "doi", "abstract",
	"publish_time", "authors", "journal", "who_covidence_id",
}

// MetadataRow builds one fixture row in MetadataHeader order
func MetadataRow(title, abstract, publishTime, authors, journal, source string) []string {
	return []string{
		"uid", "", source, title, "10.1/x", abstract,
		publishTime, authors, journal, "",
	}
}

// ThreeRowFixture has two valid rows (2020, 2021) and one with an unparsable date.
func ThreeRowFixture() [][]string {
	return [][]string{
		MetadataRow("Viral spread in cities", "We study the spread", "2020-03-15", "Doe, J.", "Lancet", "PMC"),
		MetadataRow("Vaccine response", "", "2021-07-01", "Roe, R.", "Nature", "Medline"),
		MetadataRow("Broken date paper", "Some abstract", "not-a-date", "Poe, E.", "Lancet", "PMC"),
	}
}

// SampleFixture is a richer dataset used by aggregation and rendering tests.
func SampleFixture() [][]string {
	return [][]string{
		MetadataRow("Coronavirus transmission dynamics in hospitals", "Abstract one two three", "2020-01-10", "A", "Journal of Virology", "PMC"),
		MetadataRow("Coronavirus vaccine trials", "Abstract four", "2020-02-20", "B", "Journal of Virology", "Medline"),
		MetadataRow("SARS outbreak analysis", "Old outbreak", "2003-05-01", "C", "The Lancet", "PMC"),
		MetadataRow("Influenza and coronavirus coinfection", "", "2019-11-30", "D", "The Lancet", "WHO"),
		MetadataRow("Masks reduce transmission", "Masks work", "2020-04", "E", "BMJ", "PMC"),
		MetadataRow("Early pandemic modelling", "Models", "2020", "F", "", "ArXiv"),
		MetadataRow("Remdesivir clinical outcomes", "Drug study", "2021-01-05", "G", "Journal of Virology", "Medline"),
		MetadataRow("", "Untitled abstract", "2020-06-01", "H", "BMJ", "PMC"),
		MetadataRow("Missing date paper", "x", "", "I", "BMJ", "PMC"),
	}
}

// WriteMetadataCSV writes header and rows to a file in a temporary directory
// and returns its path.
func WriteMetadataCSV(t *testing.T, header []string, rows [][]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "metadata.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		t.Fatalf("write fixture header: %v", err)
	}
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("write fixture rows: %v", err)
	}
	return path
}

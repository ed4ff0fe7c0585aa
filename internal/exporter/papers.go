package exporter

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"metadash/pkg/contracts/domain"
)

// SheetName is the worksheet holding exported papers
const SheetName = "filtered_metadata"

// PaperRecord converts a paper to a row in domain.PaperColumns order
func PaperRecord(p domain.Paper) []string {
	return []string{
		p.Title,
		p.Abstract,
		formatDate(p.PublishedAt),
		p.Authors,
		p.Journal,
		p.Source,
		formatInt(p.Year),
		formatInt(p.Month),
		formatInt(p.AbstractWordCount),
	}
}

// PaperRecords converts papers to CSV rows, preserving order
func PaperRecords(papers []domain.Paper) [][]string {
	records := make([][]string, len(papers))
	for i, p := range papers {
		records[i] = PaperRecord(p)
	}
	return records
}

// PapersCSV writes papers as CSV with a header row. No BOM is written.
func PapersCSV(w io.Writer, papers []domain.Paper) error {
	return NewCSVWriter(nil).Write(w, WriteOptions{
		Headers: domain.PaperColumns,
		Records: PaperRecords(papers),
	})
}

// PapersXLSX writes papers as a single-sheet workbook with a bold header row.
// Numeric fields are stored as numbers.
func PapersXLSX(w io.Writer, papers []domain.Paper) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("failed to open stream writer: %w", err)
	}

	header := make([]interface{}, len(domain.PaperColumns))
	for i, col := range domain.PaperColumns {
		header[i] = col
	}
	if err := sw.SetRow("A1", header, excelize.RowOpts{StyleID: headerStyle}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, p := range papers {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			cellText(p.Title),
			cellText(p.Abstract),
			formatDate(p.PublishedAt),
			cellText(p.Authors),
			cellText(p.Journal),
			cellText(p.Source),
			p.Year,
			p.Month,
			p.AbstractWordCount,
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// cellText truncates values longer than a spreadsheet cell can hold
func cellText(s string) string {
	if utf8.RuneCountInString(s) <= excelize.TotalCellChars {
		return s
	}
	return string([]rune(s)[:excelize.TotalCellChars])
}

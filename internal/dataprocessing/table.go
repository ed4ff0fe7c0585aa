package dataprocessing

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// NAValues are the cell values read as null. This is the default pandas
// read_csv set; whitespace-only cells are values.
var NAValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// Table is the raw source table. Every column is held as a string series
// of the underlying frame, with NA values flagged.
type Table struct {
	Source string
	Header []string

	frame dataframe.DataFrame
	rows  int
}

// NewTable builds a table from a header and data rows. Short rows are padded
// with nulls and cells past the header are dropped.
func NewTable(header []string, rows [][]string) (*Table, error) {
	t := &Table{Header: header, rows: len(rows)}
	if len(rows) == 0 || len(header) == 0 {
		t.rows = 0
		return t, nil
	}

	records := make([][]string, 0, len(rows)+1)
	records = append(records, header)
	for _, row := range rows {
		records = append(records, fitRow(row, len(header)))
	}

	t.frame = dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(NAValues),
	)
	if t.frame.Err != nil {
		return nil, t.frame.Err
	}
	return t, nil
}

// fitRow pads or truncates row to width cells
func fitRow(row []string, width int) []string {
	if len(row) == width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}

// NumRows returns the number of data rows
func (t *Table) NumRows() int {
	if t == nil {
		return 0
	}
	return t.rows
}

// NumColumns returns the number of header columns
func (t *Table) NumColumns() int {
	if t == nil {
		return 0
	}
	return len(t.Header)
}

// ColumnIndex returns the position of name in the header, or -1
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Header {
		if col == name {
			return i
		}
	}
	return -1
}

// Missing reports whether the cell at row, col is null
func (t *Table) Missing(row, col int) bool {
	if col < 0 || col >= len(t.Header) {
		return true
	}
	return t.frame.Elem(row, col).IsNA()
}

// Cell returns the value at row, col or "" when it is null
func (t *Table) Cell(row, col int) string {
	if t.Missing(row, col) {
		return ""
	}
	return t.frame.Elem(row, col).String()
}

// column returns the series at position col
func (t *Table) column(col int) series.Series {
	return t.frame.Col(t.frame.Names()[col])
}

// Head returns the first n rows, or all of them when there are fewer.
// Null cells render as NaN.
func (t *Table) Head(n int) [][]string {
	if n > t.NumRows() {
		n = t.NumRows()
	}
	if n <= 0 {
		return [][]string{}
	}
	return t.frame.Subset(headIndexes(n)).Records()[1:]
}

func headIndexes(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

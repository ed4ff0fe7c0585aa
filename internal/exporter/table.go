package exporter

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// TextTable is a plain-text table for terminal output. Column widths are
// measured in display cells so wide runes stay aligned.
type TextTable struct {
	Headers []string
	Rows    [][]string
	// MaxCellWidth truncates longer cells with "..."; zero disables it.
	MaxCellWidth int
}

func (t TextTable) cell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if t.MaxCellWidth > 0 && runewidth.StringWidth(s) > t.MaxCellWidth {
		s = runewidth.Truncate(s, t.MaxCellWidth, "...")
	}
	return s
}

// Lines renders the header, a dashed separator and every row
func (t TextTable) Lines() []string {
	colCount := len(t.Headers)
	for _, row := range t.Rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	table := make([][]string, 0, len(t.Rows)+1)
	if len(t.Headers) > 0 {
		table = append(table, t.Headers)
	}
	table = append(table, t.Rows...)

	cells := make([][]string, len(table))
	widths := make([]int, colCount)
	for r, row := range table {
		cells[r] = make([]string, colCount)
		for c := 0; c < colCount; c++ {
			if c < len(row) {
				cells[r][c] = t.cell(row[c])
			}
			if w := runewidth.StringWidth(cells[r][c]); w > widths[c] {
				widths[c] = w
			}
		}
	}

	lines := make([]string, 0, len(cells)+1)
	for r, row := range cells {
		var sb strings.Builder
		for c, content := range row {
			if c > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(runewidth.FillRight(content, widths[c]))
		}
		lines = append(lines, strings.TrimRight(sb.String(), " "))

		if r == 0 && len(t.Headers) > 0 {
			var sep strings.Builder
			for c, w := range widths {
				if c > 0 {
					sep.WriteString("  ")
				}
				sep.WriteString(strings.Repeat("-", w))
			}
			lines = append(lines, sep.String())
		}
	}
	return lines
}

// WriteTo writes the rendered table to w, one line per row
func (t TextTable) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, line := range t.Lines() {
		n, err := io.WriteString(w, line+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

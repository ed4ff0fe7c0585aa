package dataprocessing

import (
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ColumnMissing is the number of null cells in one column
type ColumnMissing struct {
	Column  string `json:"column"`
	Missing int    `json:"missing"`
}

// NumericSummary holds descriptive statistics for a numeric column
type NumericSummary struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	P25    float64 `json:"p25"`
	P50    float64 `json:"p50"`
	P75    float64 `json:"p75"`
	Max    float64 `json:"max"`
}

// Profile describes a raw table before cleaning
type Profile struct {
	Rows    int              `json:"rows"`
	Columns []string         `json:"columns"`
	Missing []ColumnMissing  `json:"missing"`
	Numeric []NumericSummary `json:"numeric"`
}

// ProfileTable reports the shape, per-column null counts and summary
// statistics of every column whose non-null cells all parse as numbers.
func ProfileTable(table *Table) Profile {
	p := Profile{
		Rows:    table.NumRows(),
		Columns: append([]string(nil), table.Header...),
		Missing: make([]ColumnMissing, len(table.Header)),
	}

	for col, name := range table.Header {
		p.Missing[col] = ColumnMissing{Column: name}
		if table.NumRows() == 0 {
			continue
		}

		s := table.column(col)
		present := make([]int, 0, s.Len())
		for i, na := range s.IsNaN() {
			if na {
				p.Missing[col].Missing++
				continue
			}
			present = append(present, i)
		}

		if summary, ok := describeColumn(name, s, present); ok {
			p.Numeric = append(p.Numeric, summary)
		}
	}
	return p
}

// describeColumn summarizes the present cells of s when all of them are
// finite numbers
func describeColumn(name string, s series.Series, present []int) (NumericSummary, bool) {
	if len(present) == 0 {
		return NumericSummary{}, false
	}

	values := s.Subset(present).Float()
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NumericSummary{}, false
		}
	}

	stats := dataframe.New(series.New(values, series.Float, name)).Describe()
	if stats.Err != nil {
		return NumericSummary{}, false
	}
	byLabel := make(map[string]float64, stats.Nrow())
	for r := 0; r < stats.Nrow(); r++ {
		byLabel[stats.Elem(r, 0).String()] = stats.Elem(r, 1).Float()
	}

	return NumericSummary{
		Column: name,
		Count:  len(values),
		Mean:   byLabel["mean"],
		Std:    byLabel["stddev"],
		Min:    byLabel["min"],
		P25:    byLabel["25%"],
		P50:    byLabel["median"],
		P75:    byLabel["75%"],
		Max:    byLabel["max"],
	}, true
}

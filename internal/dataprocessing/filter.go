package dataprocessing

import (
	"sort"

	"metadash/pkg/contracts/domain"
)

// AllJournals is the journal selector value that disables journal filtering
const AllJournals = "All"

// Filter selects papers by inclusive year range and, optionally, journal.
// A zero YearFrom or YearTo leaves that side open.
type Filter struct {
	YearFrom int    `json:"year_from" validate:"omitempty,gte=1000,lte=9999"`
	YearTo   int    `json:"year_to" validate:"omitempty,gte=1000,lte=9999,gtefield=YearFrom"`
	Journal  string `json:"journal,omitempty" validate:"max=512"`
}

// Apply returns the matching papers in input order. The input is not modified.
func (f Filter) Apply(papers []domain.Paper) []domain.Paper {
	out := make([]domain.Paper, 0, len(papers))
	for _, p := range papers {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Match reports whether a single paper passes the filter
func (f Filter) Match(p domain.Paper) bool {
	if f.YearFrom != 0 && p.Year < f.YearFrom {
		return false
	}
	if f.YearTo != 0 && p.Year > f.YearTo {
		return false
	}
	if f.Journal != "" && f.Journal != AllJournals && p.Journal != f.Journal {
		return false
	}
	return true
}

// YearBounds returns the smallest and largest publication year. ok is false
// for an empty slice.
func YearBounds(papers []domain.Paper) (min, max int, ok bool) {
	if len(papers) == 0 {
		return 0, 0, false
	}
	min, max = papers[0].Year, papers[0].Year
	for _, p := range papers[1:] {
		if p.Year < min {
			min = p.Year
		}
		if p.Year > max {
			max = p.Year
		}
	}
	return min, max, true
}

// Journals returns the distinct non-empty journal names, sorted
func Journals(papers []domain.Paper) []string {
	seen := make(map[string]struct{})
	for _, p := range papers {
		if p.Journal != "" {
			seen[p.Journal] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for j := range seen {
		out = append(out, j)
	}
	sort.Strings(out)
	return out
}

// Head returns the first n papers
func Head(papers []domain.Paper, n int) []domain.Paper {
	if n < 0 {
		n = 0
	}
	if n > len(papers) {
		n = len(papers)
	}
	return papers[:n]
}

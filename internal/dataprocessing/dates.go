package dataprocessing

import (
	"strings"
	"time"
)

// publishTimeLayouts are tried in order. Partial dates ("2020", "2020-04",
// "2020 Apr") resolve to the first day of the period.
var publishTimeLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01",
	"2006",
	"2006 Jan 2",
	"2006 Jan",
	"Jan 2 2006",
	"Jan 2, 2006",
	"01/02/2006",
	"2006/01/02",
}

// ParsePublishTime parses a publication date. The second result is false
// when no layout matches, the value is then treated as missing.
func ParsePublishTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range publishTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	// Month ranges: "2020 Mar-Apr", "2020 March"
	if fields := strings.Fields(s); len(fields) == 2 {
		if t, err := time.Parse("2006 Jan", fields[0]+" "+truncateMonth(fields[1])); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func truncateMonth(s string) string {
	if i := strings.IndexAny(s, "-/"); i > 0 {
		s = s[:i]
	}
	if len(s) > 3 {
		s = s[:3]
	}
	return s
}

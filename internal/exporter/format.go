package exporter

import (
	"strconv"
	"time"
)

// dateLayout is the publish_time format of exported rows
const dateLayout = "2006-01-02"

// formatDate formats a publication time as a calendar date
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return strconv.Itoa(i)
}

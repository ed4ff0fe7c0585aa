package domain

import (
	"time"
)

// Column names of the source metadata table that the cleaner keeps.
const (
	ColumnTitle       = "title"
	ColumnAbstract    = "abstract"
	ColumnPublishTime = "publish_time"
	ColumnAuthors     = "authors"
	ColumnJournal     = "journal"
	ColumnSource      = "source_x"
)

// RequiredColumns is the fixed projection applied to the raw table, in output order.
var RequiredColumns = []string{
	ColumnTitle,
	ColumnAbstract,
	ColumnPublishTime,
	ColumnAuthors,
	ColumnJournal,
	ColumnSource,
}

// Record is one row of the source table restricted to the columns we use.
// Null cells arrive as empty strings.
type Record struct {
	Title       string `json:"title"`
	Abstract    string `json:"abstract"`
	PublishTime string `json:"publish_time"`
	Authors     string `json:"authors"`
	Journal     string `json:"journal"`
	Source      string `json:"source_x"`
}

// Paper is a cleaned record with its derived fields.
// Title was never null and PublishedAt is never the zero time.
type Paper struct {
	Title             string    `json:"title"`
	Abstract          string    `json:"abstract"`
	PublishedAt       time.Time `json:"publish_time"`
	Authors           string    `json:"authors"`
	Journal           string    `json:"journal"`
	Source            string    `json:"source_x"`
	Year              int       `json:"year"`
	Month             int       `json:"month"`
	AbstractWordCount int       `json:"abstract_word_count"`
}

// PaperColumns is the header used when a set of papers is exported.
var PaperColumns = []string{
	ColumnTitle,
	ColumnAbstract,
	ColumnPublishTime,
	ColumnAuthors,
	ColumnJournal,
	ColumnSource,
	"year",
	"month",
	"abstract_word_count",
}

// CleanReport accounts for every raw row the cleaner saw.
// RawRows == DroppedMissing + DroppedUnparsable + Kept.
type CleanReport struct {
	RawRows           int `json:"raw_rows"`
	DroppedMissing    int `json:"dropped_missing"`
	DroppedUnparsable int `json:"dropped_unparsable_date"`
	Kept              int `json:"kept"`
}

// Dropped returns the total number of rows removed by cleaning.
func (r CleanReport) Dropped() int {
	return r.DroppedMissing + r.DroppedUnparsable
}

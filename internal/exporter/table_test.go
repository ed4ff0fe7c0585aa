package exporter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextTable_Lines(t *testing.T) {
	table := TextTable{
		Headers: []string{"column", "missing"},
		Rows: [][]string{
			{"title", "1"},
			{"publish_time", "12"},
		},
	}

	assert.Equal(t, []string{
		"column        missing",
		"------------  -------",
		"title         1",
		"publish_time  12",
	}, table.Lines())
}

func TestTextTable_WideRunesAndTruncation(t *testing.T) {
	table := TextTable{
		Headers:      []string{"journal", "n"},
		Rows:         [][]string{{"日本語", "1"}, {"A very long journal\nname indeed", "2"}},
		MaxCellWidth: 10,
	}

	lines := table.Lines()
	require.Len(t, lines, 4)
	assert.Equal(t, "日本語      1", lines[2])
	assert.Equal(t, "A very ...  2", lines[3])
}

func TestTextTable_RaggedAndEmpty(t *testing.T) {
	assert.Nil(t, TextTable{}.Lines())

	lines := TextTable{Rows: [][]string{{"a"}, {"b", "c"}}}.Lines()
	assert.Equal(t, []string{"a", "b  c"}, lines)

	var buf bytes.Buffer
	n, err := TextTable{Headers: []string{"x"}}.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, "x\n-\n", buf.String())
}

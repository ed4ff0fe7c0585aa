package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metadash/internal/config"
	"metadash/internal/shared/testutil"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestExplore(t *testing.T) {
	data := testutil.WriteMetadataCSV(t, testutil.MetadataHeader, testutil.SampleFixture())

	out, err := execute(t, "explore", "--data", data)
	require.NoError(t, err)

	assert.Contains(t, out, "Shape: 9 rows x 10 columns")
	assert.Contains(t, out, "Missing values:")
	assert.Contains(t, out, "First 5 rows:")
	assert.Contains(t, out, "Coronavirus vaccine trials")
	assert.NotContains(t, out, "Remdesivir clinical outcomes")
	assert.Contains(t, out, "kept:                    7")
}

func TestExplore_RowsFlag(t *testing.T) {
	data := testutil.WriteMetadataCSV(t, testutil.MetadataHeader, testutil.SampleFixture())
	cfgFile := filepath.Join(t.TempDir(), "metadash.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("dataset:\n  batch_max_rows: 3\n"), 0o644))

	out, err := execute(t, "explore", "--config", cfgFile, "--data", data)
	require.NoError(t, err)
	assert.Contains(t, out, "Shape: 3 rows x 10 columns")

	out, err = execute(t, "explore", "--config", cfgFile, "--data", data, "--rows", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Shape: 9 rows x 10 columns")

	out, err = execute(t, "explore", "--config", cfgFile, "--data", data, "--rows", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Shape: 5 rows x 10 columns")
}

func TestExplore_Export(t *testing.T) {
	data := testutil.WriteMetadataCSV(t, testutil.MetadataHeader, testutil.SampleFixture())
	export := filepath.Join(t.TempDir(), "clean", "papers.csv")

	out, err := execute(t, "explore", "--data", data, "--export", export, "--head", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "First 2 rows:")
	assert.Contains(t, out, "Cleaned rows written to "+export)

	content, err := os.ReadFile(export)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	assert.Len(t, lines, 8)
	assert.True(t, strings.HasPrefix(lines[0], "title,abstract,publish_time"))
}

func TestReport(t *testing.T) {
	data := testutil.WriteMetadataCSV(t, testutil.MetadataHeader, testutil.SampleFixture())
	outDir := t.TempDir()

	out, err := execute(t, "report", "--data", data, "--out", outDir)
	require.NoError(t, err)

	assert.Contains(t, out, "Kept 7 of 9 rows")
	for _, name := range config.ReportArtifacts {
		assert.FileExists(t, filepath.Join(outDir, name))
		assert.Contains(t, out, name)
	}
}

func TestReport_MissingDataset(t *testing.T) {
	outDir := t.TempDir()

	_, err := execute(t, "report", "--data", filepath.Join(t.TempDir(), "missing.csv"), "--out", outDir)
	require.Error(t, err)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFlagValidation(t *testing.T) {
	data := testutil.WriteMetadataCSV(t, testutil.MetadataHeader, testutil.ThreeRowFixture())

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"negative rows", []string{"explore", "--data", data, "--rows", "-1"}, "--rows must not be negative"},
		{"port out of range", []string{"serve", "--data", data, "--port", "70000"}, "invalid server port"},
		{"unknown flag", []string{"report", "--colour"}, "unknown flag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "metadash")
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePaths(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Dataset.Path = filepath.Join(dir, "metadata.csv")
	cfg.Report.OutputDir = filepath.Join(dir, "out")
	cfg.Logging.FilePath = filepath.Join(dir, "logs", "app.log")

	paths, err := ResolvePaths(cfg)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "metadata.csv"), paths.DataFile)
	assert.Equal(t, filepath.Join(dir, "out"), paths.OutputDir)
	assert.Equal(t, filepath.Join(dir, "logs"), paths.LogsDir)
	assert.Equal(t, filepath.Join(dir, "out", ArtifactHeatmap), paths.ArtifactPath(ArtifactHeatmap))
	assert.Equal(t, filepath.Join(dir, "logs", "x.log"), paths.LogPath("x.log"))
}

func TestResolvePaths_RelativeAndEmpty(t *testing.T) {
	cfg := Default()
	cfg.Report.OutputDir = ""

	paths, err := ResolvePaths(cfg)
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, paths.OutputDir)
	assert.True(t, filepath.IsAbs(paths.DataFile))
}

func TestEnsureOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "charts")
	p := &Paths{OutputDir: dir}

	require.NoError(t, p.EnsureOutputDir())
	assert.True(t, FileExists(dir))

	// idempotent
	require.NoError(t, p.EnsureOutputDir())
}

func TestReportArtifactsOrder(t *testing.T) {
	assert.Equal(t, []string{
		"publications_by_year.png",
		"publications_heatmap.png",
		"top_journals.png",
		"top_sources.png",
		"titles_wordcloud.png",
		"cumulative_publications.png",
	}, ReportArtifacts)
}

package services

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metadash/internal/charts"
	"metadash/internal/config"
	apperrors "metadash/internal/errors"
	"metadash/internal/operations"
	"metadash/internal/shared/testutil"
)

func reportPaths(t *testing.T, rows [][]string) *config.Paths {
	t.Helper()
	return &config.Paths{
		DataFile:  testutil.WriteMetadataCSV(t, testutil.MetadataHeader, rows),
		OutputDir: filepath.Join(t.TempDir(), "out"),
	}
}

func TestReportService_Run(t *testing.T) {
	paths := reportPaths(t, testutil.SampleFixture())
	logger, handler := testutil.NewTestLogger(t)

	svc := NewReportService(paths, ReportOptions{MinYear: 2000, MaxWords: 150}, logger, nil)
	result, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, result.OperationID)
	assert.Equal(t, string(operations.OperationStatusCompleted), result.Status)
	assert.Equal(t, 7, result.Report.Kept)
	require.Len(t, result.Steps, len(config.ReportArtifacts))
	require.Len(t, result.Artifacts, len(config.ReportArtifacts))

	for i, name := range config.ReportArtifacts {
		assert.Equal(t, filepath.Join(paths.OutputDir, name), result.Artifacts[i])
		assert.Equal(t, operations.StepStatusCompleted, result.Steps[i].Status)

		data, err := os.ReadFile(result.Artifacts[i])
		require.NoError(t, err, name)
		assert.Equal(t, []byte("\x89PNG"), data[:4], name)
	}

	testutil.AssertLogContains(t, handler, slog.LevelInfo, "report written")
	testutil.AssertNoErrors(t, handler)
}

func TestReportService_RenderFailureStopsRun(t *testing.T) {
	// every year is at or below the floor, so the first chart has no data
	paths := reportPaths(t, testutil.ThreeRowFixture())
	logger, handler := testutil.NewTestLogger(t)

	svc := NewReportService(paths, ReportOptions{MinYear: 2030, MaxWords: 150}, logger, nil)
	result, err := svc.Run(context.Background())
	require.Error(t, err)

	var opErr *operations.OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "publications_by_year", opErr.Step)
	assert.ErrorIs(t, err, charts.ErrNoData)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeRender))

	require.NotNil(t, result)
	assert.Equal(t, string(operations.OperationStatusFailed), result.Status)
	assert.Empty(t, result.Artifacts)
	assert.Equal(t, operations.StepStatusFailed, result.Steps[0].Status)
	for _, step := range result.Steps[1:] {
		assert.Equal(t, operations.StepStatusSkipped, step.Status)
	}

	entries, err := os.ReadDir(paths.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.Len(t, handler.GetRecordsByLevel(slog.LevelError), 1)
}

func TestReportService_InputErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		paths := &config.Paths{
			DataFile:  filepath.Join(t.TempDir(), "absent.csv"),
			OutputDir: t.TempDir(),
		}
		result, err := NewReportService(paths, ReportOptions{}, nil, nil).Run(context.Background())
		assert.Nil(t, result)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeInput))
	})

	t.Run("missing column", func(t *testing.T) {
		header := []string{"title", "abstract", "publish_time", "authors", "source_x"}
		paths := &config.Paths{
			DataFile:  testutil.WriteMetadataCSV(t, header, [][]string{{"t", "a", "2020", "x", "PMC"}}),
			OutputDir: t.TempDir(),
		}
		result, err := NewReportService(paths, ReportOptions{}, nil, nil).Run(context.Background())
		assert.Nil(t, result)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeInput))

		entries, err := os.ReadDir(paths.OutputDir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

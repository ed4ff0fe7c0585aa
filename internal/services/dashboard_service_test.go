package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"metadash/internal/charts"
	"metadash/internal/dataprocessing"
	apperrors "metadash/internal/errors"
	"metadash/internal/exporter"
	"metadash/internal/shared/testutil"
)

// MockDatasetProvider is a mock implementation of DatasetProvider
type MockDatasetProvider struct {
	mock.Mock
}

func (m *MockDatasetProvider) Get(ctx context.Context, path string, maxRows int) (*dataprocessing.Dataset, error) {
	args := m.Called(ctx, path, maxRows)
	if ds := args.Get(0); ds != nil {
		return ds.(*dataprocessing.Dataset), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDatasetProvider) Invalidate() {
	m.Called()
}

func (m *MockDatasetProvider) Cached() *dataprocessing.Dataset {
	args := m.Called()
	if ds := args.Get(0); ds != nil {
		return ds.(*dataprocessing.Dataset)
	}
	return nil
}

func newSampleDashboard(t *testing.T) *DashboardService {
	t.Helper()
	path := testutil.WriteMetadataCSV(t, testutil.MetadataHeader, testutil.SampleFixture())
	logger, _ := testutil.NewTestLogger(t)
	cache := dataprocessing.NewDatasetCache(dataprocessing.NewPipeline(logger, nil), logger, nil)
	return NewDashboardService(cache, charts.NewRenderer(logger, nil), DashboardConfig{
		DataPath:    path,
		PreviewRows: 5,
		MaxWords:    150,
		AssetsHost:  "https://assets.example/",
	}, logger, nil)
}

func TestDashboardService_View(t *testing.T) {
	svc := newSampleDashboard(t)

	tests := []struct {
		name        string
		filter      dataprocessing.Filter
		wantFrom    int
		wantTo      int
		wantJournal string
		wantMatched int
		wantPreview int
	}{
		{"open filter", dataprocessing.Filter{}, 2003, 2021, dataprocessing.AllJournals, 7, 5},
		{"single year", dataprocessing.Filter{YearFrom: 2020, YearTo: 2020}, 2020, 2020, dataprocessing.AllJournals, 4, 4},
		{"open upper bound", dataprocessing.Filter{YearFrom: 2020}, 2020, 2021, dataprocessing.AllJournals, 5, 5},
		{"journal", dataprocessing.Filter{Journal: "The Lancet"}, 2003, 2021, "The Lancet", 2, 2},
		{"outside data", dataprocessing.Filter{YearFrom: 1990, YearTo: 1995}, 1990, 1995, dataprocessing.AllJournals, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := svc.View(context.Background(), tt.filter)
			require.NoError(t, err)

			assert.Equal(t, tt.wantFrom, view.Filter.YearFrom)
			assert.Equal(t, tt.wantTo, view.Filter.YearTo)
			assert.Equal(t, tt.wantJournal, view.Filter.Journal)
			assert.Equal(t, tt.wantMatched, view.Matched)
			assert.Len(t, view.Preview, tt.wantPreview)
			assert.Equal(t, tt.wantMatched, view.Summary.Total)

			assert.Equal(t, 7, view.Total)
			assert.Equal(t, 2003, view.YearMin)
			assert.Equal(t, 2021, view.YearMax)
			assert.Equal(t, []string{"BMJ", "Journal of Virology", "The Lancet"}, view.Journals)
			assert.Equal(t, 2, view.Report.DroppedMissing)
		})
	}
}

func TestDashboardService_ViewIsStable(t *testing.T) {
	svc := newSampleDashboard(t)
	filter := dataprocessing.Filter{YearFrom: 2019, YearTo: 2021}

	first, err := svc.View(context.Background(), filter)
	require.NoError(t, err)
	second, err := svc.View(context.Background(), filter)
	require.NoError(t, err)

	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, first.Preview, second.Preview)
}

func TestDashboardService_RenderChart(t *testing.T) {
	svc := newSampleDashboard(t)

	for _, name := range DashboardCharts {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			err := svc.RenderChart(context.Background(), name, dataprocessing.Filter{}, &buf)
			require.NoError(t, err)
			assert.Contains(t, buf.String(), "<html")
			assert.Contains(t, buf.String(), "https://assets.example/")
		})
	}

	t.Run("empty selection still renders", func(t *testing.T) {
		var buf bytes.Buffer
		err := svc.RenderChart(context.Background(), ChartHeatmap, dataprocessing.Filter{YearFrom: 1990, YearTo: 1991}, &buf)
		require.NoError(t, err)
		assert.NotZero(t, buf.Len())
	})

	t.Run("unknown chart", func(t *testing.T) {
		var buf bytes.Buffer
		err := svc.RenderChart(context.Background(), "pie", dataprocessing.Filter{}, &buf)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
		assert.ErrorIs(t, err, ErrUnknownChart)
		assert.Zero(t, buf.Len())
	})
}

func TestDashboardService_ExportCSV(t *testing.T) {
	svc := newSampleDashboard(t)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), dataprocessing.Filter{Journal: "BMJ"}, &buf))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "title,abstract,publish_time"))
	assert.Contains(t, lines[1], "Masks reduce transmission")

	t.Run("empty selection writes header only", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, svc.ExportCSV(context.Background(), dataprocessing.Filter{YearFrom: 1990, YearTo: 1995}, &buf))
		assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	})
}

func TestDashboardService_ExportXLSX(t *testing.T) {
	svc := newSampleDashboard(t)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportXLSX(context.Background(), dataprocessing.Filter{YearFrom: 2020, YearTo: 2020}, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exporter.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 5)
}

func TestDashboardService_Reload(t *testing.T) {
	svc := newSampleDashboard(t)

	first, err := svc.Reload(context.Background())
	require.NoError(t, err)
	second, err := svc.Reload(context.Background())
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, first.Report, second.Report)
}

func TestDashboardService_DatasetFailure(t *testing.T) {
	provider := new(MockDatasetProvider)
	loadErr := apperrors.NewInputError("failed to open dataset", errors.New("no such file"))
	provider.On("Get", mock.Anything, "missing.csv", 100).Return(nil, loadErr)

	svc := NewDashboardService(provider, charts.NewRenderer(nil, nil), DashboardConfig{
		DataPath: "missing.csv",
		MaxRows:  100,
	}, nil, nil)

	_, err := svc.View(context.Background(), dataprocessing.Filter{})
	assert.ErrorIs(t, err, loadErr)

	var buf bytes.Buffer
	err = svc.ExportCSV(context.Background(), dataprocessing.Filter{}, &buf)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeInput))
	assert.Zero(t, buf.Len())

	provider.AssertExpectations(t)
}

func TestDashboardService_ReloadInvalidates(t *testing.T) {
	provider := new(MockDatasetProvider)
	ds := &dataprocessing.Dataset{Source: "data.csv"}
	provider.On("Invalidate").Once()
	provider.On("Get", mock.Anything, "data.csv", 0).Return(ds, nil).Once()

	svc := NewDashboardService(provider, charts.NewRenderer(nil, nil), DashboardConfig{DataPath: "data.csv"}, nil, nil)

	got, err := svc.Reload(context.Background())
	require.NoError(t, err)
	assert.Same(t, ds, got)
	provider.AssertExpectations(t)
}

func TestResolve(t *testing.T) {
	papers := testPapers(2010, 2015, 2012)

	assert.Equal(t, dataprocessing.Filter{YearFrom: 2010, YearTo: 2015, Journal: dataprocessing.AllJournals},
		Resolve(dataprocessing.Filter{}, papers))
	assert.Equal(t, dataprocessing.Filter{YearFrom: 1900, YearTo: 2015, Journal: "BMJ"},
		Resolve(dataprocessing.Filter{YearFrom: 1900, Journal: "BMJ"}, papers))
	assert.Equal(t, dataprocessing.Filter{YearTo: 2011},
		Resolve(dataprocessing.Filter{YearTo: 2011}, nil))
}

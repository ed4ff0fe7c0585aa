package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"metadash/internal/dataprocessing"
	apperrors "metadash/internal/errors"
	"metadash/internal/services"
	"metadash/internal/shared/testutil"
	"metadash/pkg/contracts/domain"
)

// MockDashboardService is a mock implementation of DashboardService
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) View(ctx context.Context, filter dataprocessing.Filter) (*services.View, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.View), args.Error(1)
}

func (m *MockDashboardService) RenderChart(ctx context.Context, name string, filter dataprocessing.Filter, w io.Writer) error {
	args := m.Called(name, filter)
	if body := args.String(0); body != "" {
		io.WriteString(w, body)
	}
	return args.Error(1)
}

func (m *MockDashboardService) ExportCSV(ctx context.Context, filter dataprocessing.Filter, w io.Writer) error {
	args := m.Called(filter)
	io.WriteString(w, args.String(0))
	return args.Error(1)
}

func (m *MockDashboardService) ExportXLSX(ctx context.Context, filter dataprocessing.Filter, w io.Writer) error {
	args := m.Called(filter)
	io.WriteString(w, args.String(0))
	return args.Error(1)
}

func (m *MockDashboardService) Reload(ctx context.Context) (*dataprocessing.Dataset, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dataprocessing.Dataset), args.Error(1)
}

func newDashboardRouter(t *testing.T, svc DashboardService) chi.Router {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	r := chi.NewRouter()
	NewDashboardHandler(svc, logger, apperrors.NewErrorHandler(logger, false)).Routes(r)
	return r
}

func serve(r http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func sampleView(filter dataprocessing.Filter) *services.View {
	published := time.Date(2020, time.March, 15, 0, 0, 0, 0, time.UTC)
	return &services.View{
		Filter:   filter,
		YearMin:  2003,
		YearMax:  2021,
		Journals: []string{"BMJ", "The Lancet"},
		Total:    7,
		Matched:  1,
		Preview: []domain.Paper{{
			Title:       "Masks <reduce> transmission",
			Journal:     "BMJ",
			Source:      "PMC",
			PublishedAt: published,
			Year:        2020,
			Month:       3,
		}},
		Report: domain.CleanReport{RawRows: 9, DroppedMissing: 2, Kept: 7},
	}
}

func TestDashboardHandler_Page(t *testing.T) {
	svc := new(MockDashboardService)
	resolved := dataprocessing.Filter{YearFrom: 2019, YearTo: 2020, Journal: "BMJ"}
	svc.On("View", dataprocessing.Filter{YearFrom: 2019, YearTo: 2020, Journal: "BMJ"}).Return(sampleView(resolved), nil)

	rec := serve(newDashboardRouter(t, svc), http.MethodGet, "/?year_from=2019&year_to=2020&journal=BMJ")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, contentTypeHTML, rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, PageTitle)
	assert.Contains(t, body, "Masks &lt;reduce&gt; transmission")
	assert.Contains(t, body, "2020-03-15")
	assert.Contains(t, body, `<option value="BMJ" selected>BMJ</option>`)
	assert.Contains(t, body, `href="/download/filtered_metadata.csv?journal=BMJ&amp;year_from=2019&amp;year_to=2020"`)
	assert.Contains(t, body, `src="/charts/heatmap?journal=BMJ&amp;year_from=2019&amp;year_to=2020"`)
	assert.Contains(t, body, `min="2003"`)
	svc.AssertExpectations(t)
}

func TestDashboardHandler_PageEmptySelection(t *testing.T) {
	svc := new(MockDashboardService)
	filter := dataprocessing.Filter{YearFrom: 1990, YearTo: 1995}
	view := sampleView(filter)
	view.Matched = 0
	view.Preview = nil
	svc.On("View", filter).Return(view, nil)

	rec := serve(newDashboardRouter(t, svc), http.MethodGet, "/?year_from=1990&year_to=1995")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No papers match the current filters.")
}

func TestDashboardHandler_InvalidFilter(t *testing.T) {
	tests := []struct {
		name   string
		target string
		field  string
	}{
		{"non-numeric year", "/?year_from=abc", "year_from"},
		{"reversed range", "/api/view?year_from=2021&year_to=2019", "year_to"},
		{"chart filter", "/charts/year?year_to=99999", "year_to"},
		{"download filter", "/download/filtered_metadata.csv?year_from=12", "year_from"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockDashboardService)
			rec := serve(newDashboardRouter(t, svc), http.MethodGet, tt.target)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, apperrors.ProblemContentType, rec.Header().Get("Content-Type"))

			var problem map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
			assert.Equal(t, "VALIDATION_FAILED", problem["error_code"])
			assert.Contains(t, rec.Body.String(), tt.field)

			svc.AssertNotCalled(t, "View", mock.Anything)
			svc.AssertNotCalled(t, "RenderChart", mock.Anything, mock.Anything)
			svc.AssertNotCalled(t, "ExportCSV", mock.Anything)
		})
	}
}

func TestDashboardHandler_DatasetUnavailable(t *testing.T) {
	svc := new(MockDashboardService)
	svc.On("View", dataprocessing.Filter{}).
		Return(nil, apperrors.NewInputError("failed to open dataset", errors.New("no such file")))

	rec := serve(newDashboardRouter(t, svc), http.MethodGet, "/")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), apperrors.TypeDataUnavailable)
}

func TestDashboardHandler_Chart(t *testing.T) {
	t.Run("renders chart page", func(t *testing.T) {
		svc := new(MockDashboardService)
		svc.On("RenderChart", "year", dataprocessing.Filter{YearFrom: 2020}).Return("<html>chart</html>", nil)

		rec := serve(newDashboardRouter(t, svc), http.MethodGet, "/charts/year?year_from=2020")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "<html>chart</html>", rec.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("unknown chart", func(t *testing.T) {
		svc := new(MockDashboardService)
		svc.On("RenderChart", "pie", dataprocessing.Filter{}).
			Return("", apperrors.NewAppError(apperrors.ErrTypeNotFound, `chart "pie" not found`, services.ErrUnknownChart))

		rec := serve(newDashboardRouter(t, svc), http.MethodGet, "/charts/pie")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, apperrors.ProblemContentType, rec.Header().Get("Content-Type"))
	})

	t.Run("render failure writes no partial page", func(t *testing.T) {
		svc := new(MockDashboardService)
		svc.On("RenderChart", "wordcloud", dataprocessing.Filter{}).
			Return("<html>partial", apperrors.NewRenderError("failed to render wordcloud", errors.New("boom")))

		rec := serve(newDashboardRouter(t, svc), http.MethodGet, "/charts/wordcloud")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "<html>partial")
	})
}

func TestDashboardHandler_Downloads(t *testing.T) {
	svc := new(MockDashboardService)
	header := strings.Join(domain.PaperColumns, ",") + "\n"
	svc.On("ExportCSV", dataprocessing.Filter{YearFrom: 1990, YearTo: 1995}).Return(header, nil)
	svc.On("ExportXLSX", dataprocessing.Filter{Journal: "BMJ"}).Return("PK-workbook", nil)
	r := newDashboardRouter(t, svc)

	rec := serve(r, http.MethodGet, "/download/filtered_metadata.csv?year_from=1990&year_to=1995")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, contentTypeCSV, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="filtered_metadata.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, header, rec.Body.String())

	rec = serve(r, http.MethodGet, "/download/filtered_metadata.xlsx?journal=BMJ")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, contentTypeXLSX, rec.Header().Get("Content-Type"))
	assert.Equal(t, "11", rec.Header().Get("Content-Length"))

	rec = serve(r, http.MethodGet, "/download/other.csv")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	svc.AssertExpectations(t)
}

func TestDashboardHandler_GetView(t *testing.T) {
	svc := new(MockDashboardService)
	filter := dataprocessing.Filter{YearFrom: 2020, YearTo: 2020, Journal: dataprocessing.AllJournals}
	svc.On("View", dataprocessing.Filter{YearFrom: 2020, YearTo: 2020}).Return(sampleView(filter), nil)

	rec := serve(newDashboardRouter(t, svc), http.MethodGet, "/api/view?year_from=2020&year_to=2020")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var resp struct {
		Matched   int               `json:"matched"`
		Total     int               `json:"total"`
		Journals  []string          `json:"journals"`
		Preview   []domain.Paper    `json:"preview"`
		Downloads map[string]string `json:"downloads"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Matched)
	assert.Equal(t, 7, resp.Total)
	assert.Len(t, resp.Preview, 1)
	assert.Equal(t, "/download/filtered_metadata.csv?year_from=2020&year_to=2020", resp.Downloads["csv"])
}

func TestDashboardHandler_Reload(t *testing.T) {
	svc := new(MockDashboardService)
	loadedAt := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	svc.On("Reload").Return(&dataprocessing.Dataset{
		Source:   "metadata.csv",
		Report:   domain.CleanReport{RawRows: 9, DroppedMissing: 2, Kept: 7},
		LoadedAt: loadedAt,
	}, nil).Once()
	r := newDashboardRouter(t, svc)

	rec := serve(r, http.MethodPost, "/api/reload")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ReloadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ReloadResponse{Source: "metadata.csv", Kept: 7, Dropped: 2, LoadedAt: loadedAt}, resp)

	rec = serve(r, http.MethodGet, "/api/reload")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	svc.AssertExpectations(t)
}

func TestFilterQuery(t *testing.T) {
	assert.Equal(t, "", filterQuery(dataprocessing.Filter{Journal: dataprocessing.AllJournals}))
	assert.Equal(t, "journal=The+Lancet&year_to=2020",
		filterQuery(dataprocessing.Filter{YearTo: 2020, Journal: "The Lancet"}))
}

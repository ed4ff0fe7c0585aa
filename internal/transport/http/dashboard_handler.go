package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"metadash/internal/config"
	"metadash/internal/dataprocessing"
	apperrors "metadash/internal/errors"
	"metadash/internal/services"
	"metadash/internal/validation"
	"metadash/pkg/contracts"
)

// Response content types
const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeHTML = "text/html; charset=utf-8"
)

// DashboardHandler serves the dashboard page, its chart frames, downloads
// and the JSON view
type DashboardHandler struct {
	service      DashboardService
	filters      *validation.FilterValidator
	logger       *slog.Logger
	errorHandler *apperrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardService, logger *slog.Logger, errorHandler *apperrors.ErrorHandler) *DashboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardHandler{
		service:      service,
		filters:      validation.NewFilterValidator(),
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes mounts every dashboard route on r
func (h *DashboardHandler) Routes(r chi.Router) {
	r.Get("/", h.Page)
	r.Get("/charts/{name}", h.Chart)
	r.Get("/download/"+config.DownloadCSV, h.DownloadCSV)
	r.Get("/download/"+config.DownloadXLSX, h.DownloadXLSX)

	r.Route("/api", func(r chi.Router) {
		r.With(render.SetContentType(render.ContentTypeJSON)).Get("/view", h.GetView)
		r.With(render.SetContentType(render.ContentTypeJSON)).Post("/reload", h.Reload)
	})
}

// filter parses the query filter, writing a 400 problem on failure
func (h *DashboardHandler) filter(w http.ResponseWriter, r *http.Request) (dataprocessing.Filter, bool) {
	filter, err := h.filters.ParseFilter(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return filter, false
	}
	return filter, true
}

// Page handles GET /
func (h *DashboardHandler) Page(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.filter(w, r)
	if !ok {
		return
	}

	view, err := h.service.View(r.Context(), filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := dashboardPage.Execute(&buf, newPageData(view)); err != nil {
		h.errorHandler.HandleError(w, r, apperrors.NewRenderError("failed to render dashboard page", err))
		return
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// Chart handles GET /charts/{name}
func (h *DashboardHandler) Chart(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.filter(w, r)
	if !ok {
		return
	}
	name := chi.URLParam(r, "name")

	var buf bytes.Buffer
	if err := h.service.RenderChart(r.Context(), name, filter, &buf); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// DownloadCSV handles GET /download/filtered_metadata.csv
func (h *DashboardHandler) DownloadCSV(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.filter(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.service.ExportCSV(r.Context(), filter, &buf); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.attachment(w, config.DownloadCSV, contentTypeCSV, buf.Len())
	buf.WriteTo(w)
}

// DownloadXLSX handles GET /download/filtered_metadata.xlsx
func (h *DashboardHandler) DownloadXLSX(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.filter(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.service.ExportXLSX(r.Context(), filter, &buf); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.attachment(w, config.DownloadXLSX, contentTypeXLSX, buf.Len())
	buf.WriteTo(w)
}

func (h *DashboardHandler) attachment(w http.ResponseWriter, filename, contentType string, size int) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(size))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
}

// ViewResponse is the JSON form of a dashboard view
type ViewResponse struct {
	*services.View
	Downloads map[string]string `json:"downloads"`
}

// GetView handles GET /api/view
func (h *DashboardHandler) GetView(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.filter(w, r)
	if !ok {
		return
	}

	view, err := h.service.View(r.Context(), filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	query := filterQuery(view.Filter)
	render.JSON(w, r, ViewResponse{
		View: view,
		Downloads: map[string]string{
			"csv":  "/download/" + config.DownloadCSV + "?" + query,
			"xlsx": "/download/" + config.DownloadXLSX + "?" + query,
		},
	})
}

// ReloadResponse reports a reloaded dataset
type ReloadResponse struct {
	Source   string    `json:"source"`
	Kept     int       `json:"kept"`
	Dropped  int       `json:"dropped"`
	LoadedAt time.Time `json:"loaded_at"`
}

// Reload handles POST /api/reload
func (h *DashboardHandler) Reload(w http.ResponseWriter, r *http.Request) {
	ds, err := h.service.Reload(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "dataset reload requested",
		slog.String("source", ds.Source),
		slog.Int("kept", ds.Report.Kept))

	render.JSON(w, r, ReloadResponse{
		Source:   ds.Source,
		Kept:     ds.Report.Kept,
		Dropped:  ds.Report.Dropped(),
		LoadedAt: ds.LoadedAt,
	})
}

// filterQuery encodes a resolved filter as query parameters
func filterQuery(f dataprocessing.Filter) string {
	values := url.Values{}
	if f.YearFrom != 0 {
		values.Set(validation.ParamYearFrom, strconv.Itoa(f.YearFrom))
	}
	if f.YearTo != 0 {
		values.Set(validation.ParamYearTo, strconv.Itoa(f.YearTo))
	}
	if f.Journal != "" && f.Journal != dataprocessing.AllJournals {
		values.Set(validation.ParamJournal, f.Journal)
	}
	return values.Encode()
}

// versionString is shown in the page footer
var versionString = contracts.GetVersionString()

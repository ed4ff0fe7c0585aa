package http

import (
	"context"
	"io"

	"metadash/internal/dataprocessing"
	"metadash/internal/services"
)

// DashboardService is the dashboard use case consumed by DashboardHandler
type DashboardService interface {
	View(ctx context.Context, filter dataprocessing.Filter) (*services.View, error)
	RenderChart(ctx context.Context, name string, filter dataprocessing.Filter, w io.Writer) error
	ExportCSV(ctx context.Context, filter dataprocessing.Filter, w io.Writer) error
	ExportXLSX(ctx context.Context, filter dataprocessing.Filter, w io.Writer) error
	Reload(ctx context.Context) (*dataprocessing.Dataset, error)
}

// HealthService is the health use case consumed by HealthHandler
type HealthService interface {
	HealthCheck(ctx context.Context) services.HealthStatus
	Version() string
}

var (
	_ DashboardService = (*services.DashboardService)(nil)
	_ HealthService    = (*services.HealthService)(nil)
)

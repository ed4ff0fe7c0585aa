package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"metadash/internal/infrastructure"
	"metadash/pkg/contracts"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	datasets  DatasetProvider
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Version   string                   `json:"version"`
	Uptime    string                   `json:"uptime"`
	Runtime   map[string]interface{}   `json:"runtime,omitempty"`
	Services  map[string]ServiceHealth `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates a health service reporting on the dataset cache
func NewHealthService(datasets DatasetProvider, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   contracts.Version,
		datasets:  datasets,
		startTime: time.Now(),
		logger:    infrastructure.WithComponent(logger, "health_service"),
	}
}

// Version returns the application version
func (hs *HealthService) Version() string {
	return hs.version
}

// HealthCheck returns the process status and whether a dataset is loaded.
// The dataset is never loaded by a health check.
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	dataset := ServiceHealth{Status: "not_loaded", Message: "dataset loads on first request"}
	if hs.datasets != nil {
		if ds := hs.datasets.Cached(); ds != nil {
			dataset = ServiceHealth{Status: "loaded"}
		}
	}

	build := contracts.GetVersionInfo()
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
		Uptime:    time.Since(hs.startTime).Round(time.Second).String(),
		Runtime: map[string]interface{}{
			"go_version": build.GoVersion,
			"platform":   build.Platform,
			"git_commit": build.GitCommit,
			"build_time": build.BuildTime,
			"goroutines": runtime.NumGoroutine(),
		},
		Services: map[string]ServiceHealth{
			"dataset": dataset,
		},
	}

	hs.logger.DebugContext(ctx, "health check completed",
		slog.String("status", status.Status),
		slog.String("dataset", dataset.Status))
	return status
}

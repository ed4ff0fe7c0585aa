package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"metadash/internal/charts"
	"metadash/internal/config"
	"metadash/internal/dataprocessing"
	apperrors "metadash/internal/errors"
	"metadash/internal/infrastructure"
	customMiddleware "metadash/internal/middleware"
	"metadash/internal/services"
	handlers "metadash/internal/transport/http"
	"metadash/pkg/contracts"
)

// Application represents the dashboard server container
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Datasets      *dataprocessing.DatasetCache
	Dashboard     *services.DashboardService
	Health        *services.HealthService
	Router        *chi.Mux
	Server        *http.Server
}

// New creates the application. A nil providers value instruments nothing
// beyond the global OpenTelemetry providers.
func New(cfg *config.Config, logger *slog.Logger, providers *infrastructure.OTelProviders) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if providers == nil {
		providers = &infrastructure.OTelProviders{
			Tracer:  otel.Tracer(infrastructure.InstrumentationName),
			Metrics: infrastructure.NoopMetrics(),
			Logger:  logger,
		}
	}

	paths, err := config.ResolvePaths(cfg)
	if err != nil {
		return nil, apperrors.NewConfigError("failed to resolve paths", err)
	}
	paths.LogPathResolution(logger)

	if !config.FileExists(paths.DataFile) {
		logger.Warn("Dataset not found, dashboard requests will fail until it exists",
			slog.String("path", paths.DataFile))
	}

	a := &Application{
		Config:        cfg,
		Paths:         paths,
		Logger:        logger,
		OTelProviders: providers,
	}
	a.initializeServices()
	a.setupRouter()
	a.createServer()
	return a, nil
}

// initializeServices builds the dataset cache and the services on top of it
func (a *Application) initializeServices() {
	metrics := a.OTelProviders.Metrics

	a.Datasets = dataprocessing.NewDatasetCache(dataprocessing.NewPipeline(a.Logger, metrics), a.Logger, metrics)
	a.Dashboard = services.NewDashboardService(a.Datasets, charts.NewRenderer(a.Logger, metrics), services.DashboardConfig{
		DataPath:    a.Paths.DataFile,
		MaxRows:     a.Config.Dataset.DashboardMaxRows,
		PreviewRows: a.Config.Dashboard.PreviewRows,
		MaxWords:    a.Config.Dashboard.MaxWords,
		AssetsHost:  a.Config.Dashboard.AssetsHost,
	}, a.Logger, metrics)
	a.Health = services.NewHealthService(a.Datasets, a.Logger)
}

// setupRouter configures the HTTP router with all routes.
// Order: RequestID → RealIP → OTel → Logger → Recoverer → headers → rate limit → timeout
func (a *Application) setupRouter() {
	r := chi.NewRouter()
	errorHandler := apperrors.NewErrorHandler(a.Logger, false)

	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders).Handler)
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(apperrors.RecoveryMiddleware(errorHandler))
		r.Use(customMiddleware.SecurityHeaders)
		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}
		r.Use(customMiddleware.Timeout(a.Config.Server.WriteTimeout))

		handlers.NewHealthHandler(a.Health, a.Logger).Routes(r)
		handlers.NewDashboardHandler(a.Dashboard, a.Logger, errorHandler).Routes(r)
	})

	// Prometheus scrapes stay outside the instrumented group
	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	a.Router = r
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Serve accepts connections on ln until ctx is cancelled, then shuts the
// server down gracefully
func (a *Application) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.InfoContext(gctx, "Dashboard listening",
			slog.String("name", contracts.AppName),
			slog.String("version", contracts.Version),
			slog.String("address", ln.Addr().String()),
			slog.String("dataset", a.Paths.DataFile))
		if err := a.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return a.Stop(context.WithoutCancel(gctx))
	})

	return g.Wait()
}

// Run listens on the configured port and serves until SIGINT, SIGTERM or
// cancellation of ctx
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}
	return a.Serve(ctx, ln)
}

// Stop shuts the server down, waiting up to Server.ShutdownTimeout
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down dashboard")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	a.Logger.InfoContext(ctx, "Dashboard stopped")
	return nil
}

// Package services holds the application use cases behind the CLI commands
// and the HTTP handlers.
//
// DashboardService serves filtered views, interactive charts and downloads
// from a memoized dataset. ReportService runs the batch report operation.
// ExploreService builds the console exploration of the raw table.
// HealthService reports liveness and dataset readiness.
package services

// Package app wires the dashboard server: dataset cache, services, HTTP
// handlers, middleware and the server lifecycle.
//
// # Initialization Flow
//
//	1. The caller loads configuration and initializes logging and telemetry
//	2. New resolves paths and builds the dataset cache and services
//	3. New builds the chi router with middleware and routes
//	4. Run serves until the context is cancelled or a signal arrives
//
// # Graceful Shutdown
//
// Run handles SIGINT and SIGTERM. The server stops accepting connections and
// active requests get Server.ShutdownTimeout to complete. The app never calls
// os.Exit; errors are returned to the caller.
package app

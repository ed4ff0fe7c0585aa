// Package middleware provides the HTTP middleware chain of the dashboard
// server: request IDs, structured request logging, rate limiting, request
// deadlines, security headers and OpenTelemetry instrumentation.
//
// Recommended order:
//
//	r.Use(middleware.RequestID)
//	r.Use(middleware.RealIP)
//	r.Use(otelMiddleware.Handler)
//	r.Use(middleware.StructuredLogger(logger))
//	r.Use(apperrors.RecoveryMiddleware(errorHandler))
//	r.Use(middleware.SecurityHeaders)
//	r.Use(rateLimiter.Handler)
//	r.Use(middleware.Timeout(timeout))
package middleware

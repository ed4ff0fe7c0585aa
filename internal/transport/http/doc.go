// Package http contains the HTTP handlers of the dashboard server.
//
// Handlers depend on small service interfaces so they can be tested with
// mocks. Errors are written as RFC 7807 problem documents through the
// shared errors.ErrorHandler.
package http

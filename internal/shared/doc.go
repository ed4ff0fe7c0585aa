// Package shared holds code used by several packages that belongs to none of
// them. Today that is only the testutil subpackage: metadata CSV fixtures and
// a buffered slog handler for asserting on log output.
package shared

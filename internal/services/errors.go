package services

import "errors"

// Service errors
var (
	// ErrUnknownChart is returned for a chart name the dashboard does not serve
	ErrUnknownChart = errors.New("unknown chart")
)

package probe

import "errors"

var (
	// ErrInvalidConfig is returned when a probe config cannot be run.
	ErrInvalidConfig = errors.New("invalid probe config")
	// ErrNoReportsAccepted is returned when every report was rejected or failed.
	ErrNoReportsAccepted = errors.New("no report was accepted")
	// ErrUnhealthy is returned when the health check does not answer 200.
	ErrUnhealthy = errors.New("service is unhealthy")
)

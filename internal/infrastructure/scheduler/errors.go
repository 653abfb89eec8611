package scheduler

import "errors"

var (
	// ErrJobNotFound is returned for an unregistered job name
	ErrJobNotFound = errors.New("job not found")

	// ErrJobRunning is returned when a manual run overlaps a running one
	ErrJobRunning = errors.New("job is already running")

	// ErrInvalidConfig is returned for a bad schedule or duplicate job
	ErrInvalidConfig = errors.New("invalid scheduler configuration")
)

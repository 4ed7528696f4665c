package metrics

import "time"

// NewNoOpRecorder creates a recorder that drops every event.
// Useful for testing, benchmarking, or when metrics are disabled.
func NewNoOpRecorder() Recorder {
	return noOpRecorder{}
}

type noOpRecorder struct{}

func (noOpRecorder) Registered(string)                       {}
func (noOpRecorder) Dispatched(string, time.Duration, error) {}
func (noOpRecorder) Resolved(error)                          {}
func (noOpRecorder) Built(time.Duration, int, error)         {}

package metrics

import "time"

// Recorder receives one observation per completed timing span. Implementations
// must tolerate nil receivers.
type Recorder interface {
	ObserveTaskDuration(task string, d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveTaskDuration(string, time.Duration) {}

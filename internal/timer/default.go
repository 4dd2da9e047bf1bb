package timer

import "time"

// defaultRegistry backs the package-level helpers.
var defaultRegistry *Registry

// Default returns the process-wide registry, creating it on first use.
func Default() *Registry {
	if defaultRegistry == nil {
		defaultRegistry = NewRegistry()
	}
	return defaultRegistry
}

// SetDefault replaces the process-wide registry.
func SetDefault(r *Registry) {
	defaultRegistry = r
}

// ResetDefault discards the process-wide registry (for testing).
func ResetDefault() {
	defaultRegistry = nil
}

// New creates a timer on the default registry.
func New(task string, args ...any) *Timer {
	return Default().New(task, args...)
}

// AverageTime reports the default registry's average for task.
func AverageTime(task string) time.Duration {
	return Default().AverageTime(task)
}

// PrintAverageTimes logs the default registry's report.
func PrintAverageTimes(sort SortMode, maxCount int) error {
	return Default().PrintAverageTimes(sort, maxCount)
}

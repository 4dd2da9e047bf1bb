// Package timer measures wall-clock time spent in named sections of code.
//
// A section is timed either as a scoped region:
//
//	r := timer.NewRegistry(timer.WithLogger(logger))
//	err := r.New("Querying database").Do(func() error {
//		return db.Ping()
//	})
//
// or by wrapping a function so every call is timed:
//
//	load := timer.Wrap1(r.New("Loading {0}"), func(path string) ([]byte, error) {
//		return os.ReadFile(path)
//	})
//
// Each span logs a START line and a COMPLETE line at debug level, indented
// by one marker per enclosing span:
//
//	----STARTED Loading a.txt
//	--------STARTED Parsing
//	--------COMPLETED (in 00.002 seconds) Parsing
//	----COMPLETED (in 00.010 seconds) Loading a.txt
//
// Placeholders in a task name are rendered for log output only. Samples are
// aggregated under the raw name ("Loading {0}" above), so every call of a
// wrapped function lands in one bounded history bucket. AverageTime and
// PrintAverageTimes summarize those buckets.
//
// Registries are single-threaded by design. Use one Registry per goroutine
// if spans must be timed concurrently.
package timer

package timer

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"git.home.luguber.info/inful/tasktimer/internal/foundation/errors"
	"git.home.luguber.info/inful/tasktimer/internal/foundation/normalization"
)

// SortMode orders report rows.
type SortMode string

const (
	// SortNone keeps the order in which task names first recorded a sample.
	SortNone SortMode = ""
	// SortName orders rows by raw task name.
	SortName SortMode = "name"
	// SortAverage orders rows by ascending average over the full retained
	// history.
	SortAverage SortMode = "average"
)

var sortModes = normalization.NewNormalizer("sort mode", map[string]SortMode{
	"":        SortNone,
	"none":    SortNone,
	"name":    SortName,
	"average": SortAverage,
}, SortNone)

// ParseSortMode converts user input such as a flag value into a SortMode.
func ParseSortMode(raw string) (SortMode, error) {
	return sortModes.Parse(raw)
}

// Validate rejects values other than the declared SortMode constants.
func (m SortMode) Validate() error {
	if sortModes.Valid(m) {
		return nil
	}
	return errors.ValidationError("sort must be one of none, name or average").
		WithContext("sort", string(m)).
		Build()
}

// TaskStats summarizes the samples of one task.
type TaskStats struct {
	Task    string
	Average time.Duration
	Min     time.Duration
	Max     time.Duration
	Count   int
}

// AverageTime returns the mean of all retained samples for task, or zero when
// there are none.
func (r *Registry) AverageTime(task string) time.Duration {
	stats, _ := r.Stats(task, 0)
	return stats.Average
}

// Stats summarizes task's retained samples. A positive maxCount restricts the
// summary to the most recent maxCount samples. The boolean is false when task
// has no samples.
func (r *Registry) Stats(task string, maxCount int) (TaskStats, bool) {
	samples := r.history.samples(task)
	if maxCount > 0 && len(samples) > maxCount {
		samples = samples[len(samples)-maxCount:]
	}
	if len(samples) == 0 {
		return TaskStats{Task: task}, false
	}

	stats := TaskStats{
		Task:  task,
		Min:   slices.Min(samples),
		Max:   slices.Max(samples),
		Count: len(samples),
	}
	var total time.Duration
	for _, d := range samples {
		total += d
	}
	stats.Average = total / time.Duration(len(samples))
	return stats, true
}

// Summaries returns one TaskStats per task with samples, ordered by sort.
// maxCount limits each summary to the most recent samples; it never limits
// the number of rows.
func (r *Registry) Summaries(sort SortMode, maxCount int) ([]TaskStats, error) {
	if err := sort.Validate(); err != nil {
		return nil, err
	}

	tasks := r.history.tasks()
	switch sort {
	case SortName:
		slices.SortStableFunc(tasks, strings.Compare)
	case SortAverage:
		averages := make(map[string]time.Duration, len(tasks))
		for _, task := range tasks {
			averages[task] = r.AverageTime(task)
		}
		slices.SortStableFunc(tasks, func(a, b string) int {
			return cmp.Compare(averages[a], averages[b])
		})
	}

	rows := make([]TaskStats, 0, len(tasks))
	for _, task := range tasks {
		if stats, ok := r.Stats(task, maxCount); ok {
			rows = append(rows, stats)
		}
	}
	return rows, nil
}

package timer

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/tasktimer/internal/logfields"
)

// ReportHeader precedes the rows written by PrintAverageTimes.
const ReportHeader = "Average | Minimum | Maximum | Count | Task name"

// FormatRow renders s the way PrintAverageTimes logs it.
func FormatRow(s TaskStats) string {
	return fmt.Sprintf("%7.3f | %7.3f | %7.3f | %5d | %s",
		s.Average.Seconds(), s.Min.Seconds(), s.Max.Seconds(), s.Count, s.Task)
}

// PrintAverageTimes logs a header and one row per task with samples at info
// level. An invalid sort mode is rejected before anything is logged.
func (r *Registry) PrintAverageTimes(sort SortMode, maxCount int) error {
	rows, err := r.Summaries(sort, maxCount)
	if err != nil {
		return err
	}

	r.log(slog.LevelInfo, ReportHeader, logfields.Sort(string(sort)), logfields.MaxCount(maxCount))
	for _, row := range rows {
		r.log(slog.LevelInfo, FormatRow(row), logfields.Task(row.Task), logfields.SampleCount(row.Count))
	}
	return nil
}

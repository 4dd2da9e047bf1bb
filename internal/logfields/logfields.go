package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyTask        = "task"
	KeyDepth       = "depth"
	KeyDurationMS  = "duration_ms"
	KeySampleCount = "sample_count"
	KeySort        = "sort"
	KeyMaxCount    = "max_count"
	KeyCommand     = "command"
	KeyRunID       = "run_id"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Task(raw string) slog.Attr       { return slog.String(KeyTask, raw) }
func Depth(d int) slog.Attr           { return slog.Int(KeyDepth, d) }
func SampleCount(n int) slog.Attr     { return slog.Int(KeySampleCount, n) }
func Sort(mode string) slog.Attr      { return slog.String(KeySort, mode) }
func MaxCount(n int) slog.Attr        { return slog.Int(KeyMaxCount, n) }
func Command(name string) slog.Attr   { return slog.String(KeyCommand, name) }
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

// Duration converts d to fractional milliseconds under KeyDurationMS.
func Duration(d time.Duration) slog.Attr {
	return DurationMS(float64(d) / float64(time.Millisecond))
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

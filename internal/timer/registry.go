package timer

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"git.home.luguber.info/inful/tasktimer/internal/logfields"
	"git.home.luguber.info/inful/tasktimer/internal/metrics"
)

const (
	// DefaultIndentMarker is repeated once per nesting level in START and
	// COMPLETE lines.
	DefaultIndentMarker = "----"
	// DefaultInitialDepth is the depth of an outermost timer, so its lines
	// carry one marker.
	DefaultInitialDepth = 1
)

// Registry owns the state shared by a family of timers: the nesting depth
// used for indentation and the per-task bounded history used for statistics.
//
// A Registry is not safe for concurrent use. Timers must enter and exit in
// strict stack order; exiting out of order corrupts the indentation of every
// later line.
type Registry struct {
	logger   *slog.Logger
	recorder metrics.Recorder
	clock    func() time.Time
	marker   string
	depth    int
	history  *history
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger for START, COMPLETE and report lines. A nil
// logger means slog.Default() at the time of each log call.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// WithRecorder mirrors every recorded sample into rec.
func WithRecorder(rec metrics.Recorder) Option {
	return func(r *Registry) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.clock = now
		}
	}
}

// WithHistoryCapacity sets how many samples are retained per task name.
// Values below one keep DefaultHistoryCapacity.
func WithHistoryCapacity(n int) Option {
	return func(r *Registry) { r.history = newHistory(n) }
}

// WithIndentMarker sets the per-level indentation marker.
func WithIndentMarker(marker string) Option {
	return func(r *Registry) {
		if marker != "" {
			r.marker = marker
		}
	}
}

// WithInitialDepth sets the nesting depth of the outermost timer.
func WithInitialDepth(depth int) Option {
	return func(r *Registry) {
		if depth >= 0 {
			r.depth = depth
		}
	}
}

// NewRegistry creates an isolated Registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		recorder: metrics.NoopRecorder{},
		clock:    time.Now,
		marker:   DefaultIndentMarker,
		depth:    DefaultInitialDepth,
		history:  newHistory(DefaultHistoryCapacity),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// New creates a timer for task. args fill positional placeholders when the
// task name is rendered for log output.
func (r *Registry) New(task string, args ...any) *Timer {
	return r.NewWith(task, args, nil)
}

// NewWith creates a timer whose task name renders with both positional and
// named values.
func (r *Registry) NewWith(task string, args []any, named map[string]any) *Timer {
	return &Timer{
		registry: r,
		task:     task,
		args:     args,
		named:    named,
	}
}

// Depth returns the current nesting depth.
func (r *Registry) Depth() int {
	return r.depth
}

// Tasks returns every task name with retained samples in first-seen order.
func (r *Registry) Tasks() []string {
	return r.history.tasks()
}

// Samples returns the retained samples for task, oldest first.
func (r *Registry) Samples(task string) []time.Duration {
	return r.history.samples(task)
}

func (r *Registry) record(task string, d time.Duration) {
	r.history.record(task, d)
	r.recorder.ObserveTaskDuration(task, d)
}

func (r *Registry) indent(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat(r.marker, depth)
}

func (r *Registry) log(level slog.Level, msg string, attrs ...slog.Attr) {
	logger := r.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.LogAttrs(context.Background(), level, msg, attrs...)
}

func (r *Registry) logSpan(msg string, task string, extra ...slog.Attr) {
	attrs := append([]slog.Attr{logfields.Task(task), logfields.Depth(r.depth)}, extra...)
	r.log(slog.LevelDebug, msg, attrs...)
}

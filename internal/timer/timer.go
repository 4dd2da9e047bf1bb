package timer

import (
	"fmt"
	"slices"
	"time"

	"git.home.luguber.info/inful/tasktimer/internal/foundation/errors"
	"git.home.luguber.info/inful/tasktimer/internal/logfields"
	"git.home.luguber.info/inful/tasktimer/internal/taskname"
)

// Timer measures one named span of code. The task name doubles as the
// aggregation key and as a template rendered with the timer's positional and
// named values for log output only.
//
// A Timer may be entered and exited repeatedly, including while it is
// already open; each Exit closes the most recent Enter. Every span is
// appended to Elapsed and to the registry history.
type Timer struct {
	registry *Registry
	task     string
	args     []any
	named    map[string]any

	elapsed []time.Duration
	frames  []frame
}

// frame is one open span.
type frame struct {
	start  time.Time
	indent string
}

// WithNamed sets the values used for "{name}" placeholders.
func (t *Timer) WithNamed(named map[string]any) *Timer {
	t.named = named
	return t
}

// Task returns the raw, unrendered task name.
func (t *Timer) Task() string {
	return t.task
}

// Rendered returns the task name as it appears in log lines.
func (t *Timer) Rendered() (string, error) {
	return taskname.Render(t.task, t.args, t.named)
}

// Elapsed returns the durations recorded by this timer, oldest first.
func (t *Timer) Elapsed() []time.Duration {
	return slices.Clone(t.elapsed)
}

// Enter starts a span: it logs "<indent>STARTED <name>" at debug level and
// increases the registry depth. A task name that cannot be rendered is
// returned as an error and leaves the registry untouched.
func (t *Timer) Enter() (*Timer, error) {
	r := t.registry
	start := r.clock()
	indent := r.indent(r.depth)

	name, err := t.Rendered()
	if err != nil {
		return t, err
	}

	t.frames = append(t.frames, frame{start: start, indent: indent})
	r.logSpan(indent+"STARTED "+name, t.task)
	r.depth++
	return t, nil
}

// Exit ends the most recently opened span. It restores the enclosing depth,
// records the elapsed time and logs
// "<indent>COMPLETED (in SS.mmm seconds) <name>" with the indent chosen at
// Enter. The sample is recorded even if the name fails to render.
func (t *Timer) Exit() error {
	if len(t.frames) == 0 {
		return errors.InternalError("timer exited without a matching enter").
			WithContext("task", t.task).
			Build()
	}
	open := t.frames[len(t.frames)-1]
	t.frames = t.frames[:len(t.frames)-1]

	r := t.registry
	r.depth--
	elapsed := r.clock().Sub(open.start)
	t.elapsed = append(t.elapsed, elapsed)
	r.record(t.task, elapsed)

	name, err := t.Rendered()
	if err != nil {
		return err
	}
	r.logSpan(fmt.Sprintf("%sCOMPLETED (in %06.3f seconds) %s", open.indent, elapsed.Seconds(), name),
		t.task, logfields.Duration(elapsed))
	return nil
}

// Do runs fn inside a span. fn is not run when Enter fails. Exit happens on
// every path out of fn, including panics, which are not recovered. fn's error
// is returned as is.
func (t *Timer) Do(fn func() error) (err error) {
	if _, err := t.Enter(); err != nil {
		return err
	}
	defer func() {
		if exitErr := t.Exit(); err == nil {
			err = exitErr
		}
	}()
	return fn()
}

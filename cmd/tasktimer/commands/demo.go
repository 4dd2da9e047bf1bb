package commands

import (
	"time"

	"git.home.luguber.info/inful/tasktimer/internal/timer"
)

// DemoCmd implements the 'demo' command.
type DemoCmd struct {
	Seconds int `help:"Length of the sleep in the accuracy example" default:"1"`

	ReportFlags `embed:""`
}

// Run executes the demo scenarios in order, then prints the report.
func (d *DemoCmd) Run(g *Global) error {
	r := g.Registry

	basic := timer.Wrap(r.New("Example use as a basic decorator"), func() error { return nil })
	withArgs := timer.Wrap2(r.New("Example use as a decorator with arguments {0} and {1}"),
		func(a, b int) (int, error) { return a + b, nil })
	withNamed := timer.WrapCall(r.New("Example use as a decorator with named values {greeting} and {ratio:.2f}"),
		func(timer.Call) (bool, error) { return true, nil })
	withMixed := timer.WrapCall(r.New("Example use with a mix of positional and named values {0} and {greeting}"),
		func(timer.Call) (bool, error) { return true, nil })
	sleep := timer.Wrap1(r.New("Example use showing timer is accurate to {0} seconds"),
		func(n int) (time.Duration, error) { return d.sleep(g, n) })
	indented := timer.Wrap(r.New("Example use as decorators demonstrating indentation"), basic)

	steps := []func() error{
		func() error {
			return r.New("Example use as a scoped region").Do(func() error { return nil })
		},
		func() error {
			return r.New("Example use as scoped region indent 1").Do(func() error {
				return r.New("Example use as scoped region indent 2").Do(func() error { return nil })
			})
		},
		basic,
		func() error {
			_, err := withArgs(1, 2)
			return err
		},
		func() error {
			_, err := withNamed(timer.Call{Named: map[string]any{"greeting": "hello", "ratio": 3.14159}})
			return err
		},
		func() error {
			_, err := withMixed(timer.Call{Args: []any{1}, Named: map[string]any{"greeting": "hello"}})
			return err
		},
		func() error {
			_, err := sleep(d.Seconds)
			return err
		},
		indented,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	return d.Print(g)
}

// sleep waits n seconds or until the run is cancelled.
func (d *DemoCmd) sleep(g *Global, n int) (time.Duration, error) {
	wait := time.Duration(n) * time.Second
	select {
	case <-time.After(wait):
		return wait, nil
	case <-g.Context.Done():
		return 0, g.Context.Err()
	}
}

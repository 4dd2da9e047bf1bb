package commands

import (
	stderrors "errors"
	"os/exec"
	"strings"

	"git.home.luguber.info/inful/tasktimer/internal/foundation/errors"
	"git.home.luguber.info/inful/tasktimer/internal/logfields"
)

// ExecCmd implements the 'exec' command.
type ExecCmd struct {
	Task   string `short:"t" help:"Task name; {0} is the command line, {run} the 1-based iteration" default:"exec {0}"`
	Repeat int    `short:"n" help:"Number of times to run the command" default:"1"`

	ReportFlags `embed:""`

	Command []string `arg:"" passthrough:"" help:"Command and arguments to time"`
}

// Run times the command Repeat times under one task name and prints the
// report. The first failing run stops the loop; the report is still printed.
func (e *ExecCmd) Run(g *Global) error {
	if e.Repeat < 1 {
		return errors.ValidationError("--repeat must be at least 1").
			WithContext("repeat", e.Repeat).
			Build()
	}
	if len(e.Command) == 0 {
		return errors.ValidationError("no command given").Build()
	}

	line := strings.Join(e.Command, " ")
	var runErr error
	for i := 0; i < e.Repeat; i++ {
		t := g.Registry.NewWith(e.Task, []any{line}, map[string]any{"run": i + 1})
		if runErr = t.Do(func() error { return e.runOnce(g) }); runErr != nil {
			g.Logger.Error("command failed", logfields.Command(line), logfields.Error(runErr))
			break
		}
	}

	if err := e.Print(g); err != nil {
		return err
	}
	return runErr
}

func (e *ExecCmd) runOnce(g *Global) error {
	cmd := exec.CommandContext(g.Context, e.Command[0], e.Command[1:]...)
	cmd.Stdout = g.Stdout
	cmd.Stderr = g.Stderr
	err := cmd.Run()
	if err == nil {
		return nil
	}

	b := errors.RuntimeError("command failed").
		WithCause(err).
		WithContext("command", e.Command[0])
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		b = b.WithContext("exit_code", exitErr.ExitCode())
	}
	return b.Build()
}

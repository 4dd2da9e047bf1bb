package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/tasktimer/internal/config"
	"git.home.luguber.info/inful/tasktimer/internal/logfields"
	"git.home.luguber.info/inful/tasktimer/internal/metrics"
	"git.home.luguber.info/inful/tasktimer/internal/timer"
)

// Global is the state shared by every subcommand once configuration is loaded.
type Global struct {
	Context  context.Context
	Config   *config.Config
	Logger   *slog.Logger
	Registry *timer.Registry
	Metrics  *prometheus.Registry // nil unless metrics.enabled
	RunID    string
	Stdout   io.Writer
	Stderr   io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"tasktimer.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Demo DemoCmd `cmd:"" help:"Run the example timing scenarios and print the report"`
	Exec ExecCmd `cmd:"" help:"Time an external command and print the report"`
}

// AfterApply runs after flag parsing; it installs a bootstrap logger until
// Setup replaces it with the configured one.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// Setup loads configuration and builds the logger, timer registry and
// optional metrics registry for one run.
func (c *CLI) Setup(ctx context.Context, stdout, stderr io.Writer) (*Global, error) {
	cfg, res, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level.SlogLevel()
	if c.Verbose {
		level = slog.LevelDebug
	}
	runID := uuid.NewString()
	logger := NewLogger(stderr, cfg.Logging.Format, level).With(logfields.RunID(runID))
	slog.SetDefault(logger)
	for _, w := range res.Warnings {
		logger.Warn(w)
	}

	opts := append(cfg.TimerOptions(), timer.WithLogger(logger))
	var promReg *prometheus.Registry
	if cfg.Metrics.Enabled {
		promReg = prometheus.NewRegistry()
		opts = append(opts, timer.WithRecorder(metrics.NewPrometheusRecorder(promReg, cfg.Metrics.Namespace)))
	}
	registry := timer.NewRegistry(opts...)
	timer.SetDefault(registry)

	return &Global{
		Context:  ctx,
		Config:   cfg,
		Logger:   logger,
		Registry: registry,
		Metrics:  promReg,
		RunID:    runID,
		Stdout:   stdout,
		Stderr:   stderr,
	}, nil
}

// NewLogger builds the slog handler selected by format.
func NewLogger(w io.Writer, format config.LogFormat, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/tasktimer/internal/foundation/errors"
	"git.home.luguber.info/inful/tasktimer/internal/timer"
)

// Config represents the application configuration.
type Config struct {
	Timer   TimerConfig   `yaml:"timer"`
	Logging LoggingConfig `yaml:"logging"`
	Report  ReportConfig  `yaml:"report"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// TimerConfig controls how registries indent and retain samples.
type TimerConfig struct {
	HistoryCapacity int    `yaml:"history_capacity"`
	IndentMarker    string `yaml:"indent_marker"`
	InitialDepth    int    `yaml:"initial_depth"`
}

// LoggingConfig selects the slog handler built by the CLI.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// ReportConfig holds the defaults for the average-times report.
type ReportConfig struct {
	Sort     timer.SortMode `yaml:"sort"`
	MaxCount int            `yaml:"max_count"`
	Table    bool           `yaml:"table"` // Render the report as a table on stdout
}

// MetricsConfig enables mirroring samples into an in-process Prometheus registry.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Timer: TimerConfig{
			HistoryCapacity: timer.DefaultHistoryCapacity,
			IndentMarker:    timer.DefaultIndentMarker,
			InitialDepth:    timer.DefaultInitialDepth,
		},
		Logging: LoggingConfig{
			Level:  LogLevelInfo,
			Format: LogFormatText,
		},
		Report: ReportConfig{
			Sort: timer.SortNone,
		},
		Metrics: MetricsConfig{
			Namespace: "tasktimer",
		},
	}
}

// Load reads configPath on top of Default. A missing file is not an error.
// Environment files and TASKTIMER_* overrides are applied afterwards, then the
// result is normalized and validated.
func Load(configPath string) (*Config, *NormalizationResult, error) {
	loadEnvFile()

	cfg := Default()
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			// Expand environment variables in the YAML content
			expanded := os.ExpandEnv(string(data))
			if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
				return nil, nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse config file").
					WithContext("path", configPath).
					Fatal().
					Build()
			}
		case os.IsNotExist(err):
		default:
			return nil, nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
				WithContext("path", configPath).
				Fatal().
				Build()
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, nil, err
	}

	res, err := NormalizeConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, res, nil
}

// TimerOptions translates the timer section into registry options.
func (c *Config) TimerOptions() []timer.Option {
	return []timer.Option{
		timer.WithHistoryCapacity(c.Timer.HistoryCapacity),
		timer.WithIndentMarker(c.Timer.IndentMarker),
		timer.WithInitialDepth(c.Timer.InitialDepth),
	}
}

package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/tasktimer/internal/foundation/errors"
	"git.home.luguber.info/inful/tasktimer/internal/timer"
)

// Environment variables that override file configuration.
const (
	EnvLogLevel        = "TASKTIMER_LOG_LEVEL"
	EnvLogFormat       = "TASKTIMER_LOG_FORMAT"
	EnvHistoryCapacity = "TASKTIMER_HISTORY_CAPACITY"
	EnvReportSort      = "TASKTIMER_REPORT_SORT"
	EnvMetricsEnabled  = "TASKTIMER_METRICS_ENABLED"
)

// loadEnvFile loads the first of .env and .env.local that exists. Variables
// already present in the process environment are never overwritten.
func loadEnvFile() {
	for _, envPath := range []string{".env", ".env.local"} {
		if err := godotenv.Load(envPath); err == nil {
			return
		}
	}
}

// applyEnvOverrides copies non-empty TASKTIMER_* variables into cfg.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = LogLevel(v)
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Logging.Format = LogFormat(v)
	}
	if v := os.Getenv(EnvReportSort); v != "" {
		cfg.Report.Sort = timer.SortMode(v)
	}
	if v := os.Getenv(EnvHistoryCapacity); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError(EnvHistoryCapacity, v, err)
		}
		cfg.Timer.HistoryCapacity = n
	}
	if v := os.Getenv(EnvMetricsEnabled); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return envError(EnvMetricsEnabled, v, err)
		}
		cfg.Metrics.Enabled = enabled
	}
	return nil
}

func envError(name, value string, cause error) error {
	return errors.WrapError(cause, errors.CategoryConfig, "invalid environment override").
		WithContext("variable", name).
		WithContext("value", value).
		Fatal().
		Build()
}

package config

import (
	"git.home.luguber.info/inful/tasktimer/internal/foundation/errors"
)

// Validate checks bounds and enumerations that normalization cannot repair.
func (c *Config) Validate() error {
	switch {
	case c.Timer.HistoryCapacity < 1:
		return invalidField("timer.history_capacity", c.Timer.HistoryCapacity, "must be at least 1")
	case c.Timer.IndentMarker == "":
		return invalidField("timer.indent_marker", c.Timer.IndentMarker, "must not be empty")
	case c.Timer.InitialDepth < 0:
		return invalidField("timer.initial_depth", c.Timer.InitialDepth, "must not be negative")
	case c.Report.MaxCount < 0:
		return invalidField("report.max_count", c.Report.MaxCount, "must not be negative")
	}

	if err := c.Report.Sort.Validate(); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid report.sort").
			WithContext("field", "report.sort").
			WithContext("value", string(c.Report.Sort)).
			Fatal().
			Build()
	}
	return nil
}

func invalidField(field string, value any, reason string) error {
	return errors.ConfigError("invalid "+field+": "+reason).
		WithContext("field", field).
		WithContext("value", value).
		Build()
}

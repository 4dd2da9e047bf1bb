package config

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/tasktimer/internal/foundation/errors"
	"git.home.luguber.info/inful/tasktimer/internal/timer"
)

// NormalizationResult captures adjustments & warnings from normalization pass.
type NormalizationResult struct{ Warnings []string }

// NormalizeConfig canonicalizes enumerated fields in place. Unknown logging
// values fall back to their defaults with a warning. An unknown sort mode is
// left alone for Validate to reject.
func NormalizeConfig(c *Config) (*NormalizationResult, error) {
	if c == nil {
		return nil, errors.InternalError("config is nil").Build()
	}
	res := &NormalizationResult{}
	normalizeLogging(&c.Logging, res)
	normalizeReport(&c.Report, res)
	return res, nil
}

func normalizeLogging(l *LoggingConfig, res *NormalizationResult) {
	if lvl, err := ParseLogLevel(string(l.Level)); err == nil {
		if l.Level != lvl {
			res.Warnings = append(res.Warnings, warnChanged("logging.level", l.Level, lvl))
			l.Level = lvl
		}
	} else {
		res.Warnings = append(res.Warnings, warnUnknown("logging.level", string(l.Level), string(LogLevelInfo)))
		l.Level = LogLevelInfo
	}

	if f, err := ParseLogFormat(string(l.Format)); err == nil {
		if l.Format != f {
			res.Warnings = append(res.Warnings, warnChanged("logging.format", l.Format, f))
			l.Format = f
		}
	} else {
		res.Warnings = append(res.Warnings, warnUnknown("logging.format", string(l.Format), string(LogFormatText)))
		l.Format = LogFormatText
	}
}

func normalizeReport(r *ReportConfig, res *NormalizationResult) {
	if strings.TrimSpace(string(r.Sort)) == "" {
		r.Sort = timer.SortNone
		return
	}
	if mode, err := timer.ParseSortMode(string(r.Sort)); err == nil && r.Sort != mode {
		res.Warnings = append(res.Warnings, warnChanged("report.sort", r.Sort, mode))
		r.Sort = mode
	}
}

func warnChanged(field string, from, to any) string {
	return fmt.Sprintf("normalized %s from '%v' to '%v'", field, from, to)
}

func warnUnknown(field, value, def string) string {
	return fmt.Sprintf("unknown %s '%s', defaulting to %s", field, value, def)
}

package commands

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"git.home.luguber.info/inful/tasktimer/internal/foundation/errors"
	"git.home.luguber.info/inful/tasktimer/internal/timer"
)

// ReportFlags override the report section of the configuration.
type ReportFlags struct {
	Sort     string `help:"Report order: none, name or average (default from config)" default:""`
	MaxCount int    `name:"max-count" help:"Summarize only the most recent N samples per task; 0 for all (default from config)" default:"-1"`
	Table    bool   `help:"Also render the report as a table on stdout"`
}

// resolve merges the flags with cfg, flags taking precedence.
func (f ReportFlags) resolve(g *Global) (timer.SortMode, int, bool, error) {
	sort := g.Config.Report.Sort
	if f.Sort != "" {
		mode, err := timer.ParseSortMode(f.Sort)
		if err != nil {
			return "", 0, false, err
		}
		sort = mode
	}
	maxCount := g.Config.Report.MaxCount
	if f.MaxCount >= 0 {
		maxCount = f.MaxCount
	}
	return sort, maxCount, f.Table || g.Config.Report.Table, nil
}

// Print logs the average-times report and, when requested, writes the table
// and the metrics exposition to stdout.
func (f ReportFlags) Print(g *Global) error {
	sort, maxCount, table, err := f.resolve(g)
	if err != nil {
		return err
	}
	if err := g.Registry.PrintAverageTimes(sort, maxCount); err != nil {
		return err
	}

	if table {
		rows, err := g.Registry.Summaries(sort, maxCount)
		if err != nil {
			return err
		}
		if err := writeTable(g.Stdout, rows); err != nil {
			return err
		}
	}
	if g.Metrics != nil {
		return writeMetrics(g.Stdout, g.Metrics)
	}
	return nil
}

func writeTable(w io.Writer, rows []timer.TaskStats) error {
	table := tablewriter.NewWriter(w)
	table.Header("Average", "Minimum", "Maximum", "Count", "Task name")
	for _, row := range rows {
		if err := table.Append(
			fmt.Sprintf("%.3f", row.Average.Seconds()),
			fmt.Sprintf("%.3f", row.Min.Seconds()),
			fmt.Sprintf("%.3f", row.Max.Seconds()),
			fmt.Sprintf("%d", row.Count),
			row.Task,
		); err != nil {
			return errors.WrapError(err, errors.CategoryInternal, "failed to append report row").Build()
		}
	}
	if err := table.Render(); err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to render report table").Build()
	}
	return nil
}

func writeMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to gather metrics").Build()
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.WrapError(err, errors.CategoryRuntime, "failed to write metrics").Build()
		}
	}
	return nil
}

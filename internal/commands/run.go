package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spendtrack-dev/spendtrack/internal/accounts"
	"github.com/spendtrack-dev/spendtrack/internal/config"
	"github.com/spendtrack-dev/spendtrack/internal/model"
	"github.com/spendtrack-dev/spendtrack/internal/pipeline"
	"github.com/spendtrack-dev/spendtrack/internal/render"
	"github.com/spendtrack-dev/spendtrack/internal/report"
	"github.com/spendtrack-dev/spendtrack/internal/rules"
	"github.com/spendtrack-dev/spendtrack/internal/runlog"
)

// runFlags are the flags shared by report and scan.
type runFlags struct {
	format  string
	month   string
	policy  string
	workers int
	maxRows int
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "f", string(render.FormatText), "output format (text, json, yaml)")
	cmd.Flags().StringVar(&f.month, "month", "", "only show this month (YYYY-MM)")
	cmd.Flags().StringVar(&f.policy, "policy", "", "override the account policy (first-match, best-score)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "classification workers (default from config)")
	cmd.Flags().IntVar(&f.maxRows, "max-rows", 0, "transactions listed per month in text output (default from config)")
}

// runSettings is runFlags resolved against the config.
type runSettings struct {
	format   render.Format
	render   render.Config
	pipeline pipeline.Options
	month    *model.Month
}

func (f *runFlags) resolve(cmd *cobra.Command, cfg *config.Config) (runSettings, error) {
	var s runSettings

	format, err := render.ParseFormat(f.format)
	if err != nil {
		return s, err
	}
	s.format = format

	s.render = render.Config{
		MaxRows:             cfg.Render.MaxRows,
		MaxDescriptionWidth: cfg.Render.MaxDescriptionWidth,
		CurrencySymbol:      cfg.Render.CurrencySymbol,
	}
	if cmd.Flags().Changed("max-rows") {
		s.render.MaxRows = f.maxRows
	}

	s.pipeline.Workers = cfg.Classify.Workers
	if cmd.Flags().Changed("workers") {
		s.pipeline.Workers = f.workers
	}

	if f.policy != "" {
		policy, err := rules.ParsePolicy(f.policy)
		if err != nil {
			return s, err
		}
		s.pipeline.Policy = policy
	}

	if f.month != "" {
		m, err := model.ParseMonth(f.month)
		if err != nil {
			return s, fmt.Errorf("--month: %w", err)
		}
		s.month = &m
	}
	return s, nil
}

// view narrows r to the requested month, if any.
func (s runSettings) view(r *report.Report) *report.Report {
	if s.month == nil {
		return r
	}
	return r.Only(*s.month)
}

// profileFor returns the named account, or routes path by file name when
// name is empty.
func profileFor(svc *accounts.Service, name, path string) (accounts.Profile, error) {
	if name != "" {
		return svc.Get(name)
	}
	return svc.Route(path)
}

func appendRunLog(root string, reports []*report.Report) error {
	now := time.Now()
	entries := make([]runlog.Entry, 0, len(reports))
	for _, r := range reports {
		entries = append(entries, runlog.FromReport(r, now))
	}
	if err := runlog.Append(root, entries); err != nil {
		return fmt.Errorf("writing run log: %w", err)
	}
	return nil
}

// Package pipeline runs one export through cleaning, classification and
// report building.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spendtrack-dev/spendtrack/internal/classify"
	"github.com/spendtrack-dev/spendtrack/internal/cleaner"
	"github.com/spendtrack-dev/spendtrack/internal/importer"
	"github.com/spendtrack-dev/spendtrack/internal/logger"
	"github.com/spendtrack-dev/spendtrack/internal/model"
	"github.com/spendtrack-dev/spendtrack/internal/report"
	"github.com/spendtrack-dev/spendtrack/internal/rules"
)

// Options tunes a run.
type Options struct {
	Source  string       // name recorded in the report diagnostics
	Policy  rules.Policy // overrides the rule set policy when set
	Workers int
}

// Result is a finished run.
type Result struct {
	Report   *report.Report
	Rejected []cleaner.Rejection
}

// Run cleans rows, classifies them with rs and builds the report. Rejected
// rows are logged at warn level and counted; they never fail the run.
func Run(ctx context.Context, rows []model.RawRow, rs *rules.RuleSet, opts Options) (*Result, error) {
	log := logger.FromContext(ctx)

	cleaned := cleaner.Clean(rows)
	for _, rej := range cleaned.Rejected {
		log.Warn().
			Str("source", opts.Source).
			Int("line", rej.Row.Line).
			Str("field", rej.Field).
			Str("value", rej.Value).
			Msg("row rejected")
	}

	classified, err := classify.All(ctx, cleaned.Transactions, rs, classify.Options{Policy: opts.Policy, Workers: opts.Workers})
	if err != nil {
		return nil, fmt.Errorf("classifying: %w", err)
	}

	diag := report.Diagnostics{
		Source:   opts.Source,
		Account:  rs.Name(),
		Rows:     len(rows),
		Rejected: len(cleaned.Rejected),
	}
	rep := report.Build(classified, diag)

	log.Info().
		Str("source", opts.Source).
		Str("account", diag.Account).
		Int("rows", diag.Rows).
		Int("rejected", diag.Rejected).
		Int("months", len(rep.Buckets)).
		Msg("report built")

	return &Result{Report: rep, Rejected: cleaned.Rejected}, nil
}

// RunFile loads path and runs it. A file that cannot be loaded is an error
// and the core is not invoked.
func RunFile(ctx context.Context, path string, rs *rules.RuleSet, opts Options) (*Result, error) {
	rows, err := importer.Load(path)
	if err != nil {
		return nil, err
	}
	if opts.Source == "" {
		opts.Source = filepath.Base(path)
	}
	return Run(ctx, rows, rs, opts)
}

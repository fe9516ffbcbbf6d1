// Package render writes reports as text, JSON or YAML.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/spendtrack-dev/spendtrack/internal/report"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat returns the Format named s. Empty selects text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, json or yaml)", s)
}

// Config controls text rendering. The zero value prints everything.
type Config struct {
	MaxRows             int    // transactions listed per month, 0 = all
	MaxDescriptionWidth int    // description column width in runes, 0 = unlimited
	CurrencySymbol      string // defaults to "$"
}

func (c Config) currency() string {
	if c.CurrencySymbol == "" {
		return "$"
	}
	return c.CurrencySymbol
}

// Write renders reports in format f. JSON renders a single report as an object
// and several as an array; YAML writes one document per report.
func Write(w io.Writer, f Format, cfg Config, reports ...*report.Report) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, reports)
	case FormatYAML:
		return writeYAML(w, reports)
	case FormatText, "":
		for i, r := range reports {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if err := Text(w, r, cfg); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown format %q", f)
}

func writeJSON(w io.Writer, reports []*report.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(reports) == 1 {
		return enc.Encode(NewDocument(reports[0]))
	}
	docs := make([]Document, len(reports))
	for i, r := range reports {
		docs[i] = NewDocument(r)
	}
	return enc.Encode(docs)
}

func writeYAML(w io.Writer, reports []*report.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, r := range reports {
		if err := enc.Encode(NewDocument(r)); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
	}
	return enc.Close()
}

// Text writes the per-month transaction listing, the month's expense total
// and its category breakdown.
func Text(w io.Writer, r *report.Report, cfg Config) error {
	p := &printer{w: w}
	cur := cfg.currency()

	d := r.Diagnostics
	if d.Source != "" {
		p.printf("Source: %s (account %s)\n", d.Source, d.Account)
	}
	p.printf("Rows: %d, accepted %d, rejected %d\n", d.Rows, d.Accepted(), d.Rejected)

	if r.Empty() {
		p.printf("\nNo transactions.\n")
		return p.err
	}

	for _, b := range r.Buckets {
		p.printf("\nTransactions for %s:\n\n", b.Month)

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		p.fprintf(tw, "DATE\tAMOUNT\tDESCRIPTION\tCATEGORY\n")
		shown := b.Transactions
		if cfg.MaxRows > 0 && len(shown) > cfg.MaxRows {
			shown = shown[:cfg.MaxRows]
		}
		for _, txn := range shown {
			p.fprintf(tw, "%s\t%s\t%s\t%s\n",
				txn.Date.Format(dateFormat),
				txn.Amount.StringFixed(2),
				truncate(txn.Description, cfg.MaxDescriptionWidth),
				txn.Category)
		}
		if p.err == nil {
			p.err = tw.Flush()
		}
		if hidden := len(b.Transactions) - len(shown); hidden > 0 {
			p.printf("... %d more\n", hidden)
		}

		p.printf("\nTotal spent in %s: %s%s\n", b.Month, cur, b.TotalExpense.Abs().StringFixed(2))
		for _, c := range b.Categories {
			pct := c.Percentage.String()
			if c.Percentage.Defined {
				pct += "%"
			}
			p.printf("    - %s: %s%s (%s)\n", c.Name, cur, c.Subtotal.Abs().StringFixed(2), pct)
		}
	}
	return p.err
}

// truncate shortens s to width runes, marking the cut with "...".
func truncate(s string, width int) string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	if width <= 3 {
		return string([]rune(s)[:width])
	}
	return string([]rune(s)[:width-3]) + "..."
}

// printer records the first write error and drops later writes.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	p.fprintf(p.w, format, args...)
}

func (p *printer) fprintf(w io.Writer, format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(w, format, args...)
}

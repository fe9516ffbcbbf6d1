// Package runlog appends one CSV row per processed export to logs/run-log.csv.
package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spendtrack-dev/spendtrack/internal/report"
)

// Entry is one row in the run log.
type Entry struct {
	Timestamp time.Time
	Source    string
	Account   string
	Rows      int
	Rejected  int
	Months    int
}

// Header is the CSV header for run-log.csv.
const Header = "timestamp,source,account,rows,accepted,rejected,months"

const (
	numFields    = 7
	logDir       = "logs"
	logFile      = "run-log.csv"
	colTimestamp = 0
	colSource    = 1
	colAccount   = 2
	colRows      = 3
	colAccepted  = 4
	colRejected  = 5
	colMonths    = 6
)

// FromReport summarizes a finished report.
func FromReport(r *report.Report, now time.Time) Entry {
	return Entry{
		Timestamp: now.UTC(),
		Source:    r.Diagnostics.Source,
		Account:   r.Diagnostics.Account,
		Rows:      r.Diagnostics.Rows,
		Rejected:  r.Diagnostics.Rejected,
		Months:    len(r.Buckets),
	}
}

// Accepted returns the number of rows that survived cleaning.
func (e Entry) Accepted() int { return e.Rows - e.Rejected }

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colSource] = e.Source
	row[colAccount] = e.Account
	row[colRows] = strconv.Itoa(e.Rows)
	row[colAccepted] = strconv.Itoa(e.Accepted())
	row[colRejected] = strconv.Itoa(e.Rejected)
	row[colMonths] = strconv.Itoa(e.Months)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry. The accepted column is
// derived and not read back.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	ints := make(map[int]int, 3)
	for _, col := range []int{colRows, colRejected, colMonths} {
		n, err := strconv.Atoi(record[col])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing column %d %q: %w", col, record[col], err)
		}
		ints[col] = n
	}

	return Entry{
		Timestamp: ts,
		Source:    record[colSource],
		Account:   record[colAccount],
		Rows:      ints[colRows],
		Rejected:  ints[colRejected],
		Months:    ints[colMonths],
	}, nil
}

// Append writes entries to <root>/logs/run-log.csv, creating the file and
// header if needed.
func Append(root string, entries []Entry) error {
	dir := filepath.Join(root, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(dir, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <root>/logs/run-log.csv, or nil if the file
// does not exist.
func Read(root string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(root, logDir, logFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

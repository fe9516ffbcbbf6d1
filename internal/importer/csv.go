package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spendtrack-dev/spendtrack/internal/model"
)

// Bank exports have no header and exactly five columns:
// date, amount, symbol, symbol, description.
const (
	numFields  = 5
	colDate    = 0
	colAmount  = 1
	colSymbol1 = 2
	colSymbol2 = 3
	colDesc    = 4
)

const utf8BOM = "\ufeff"

// ReadRows reads a headerless five-column export. A row with the wrong number
// of columns fails the whole load. Field contents are not validated here.
func ReadRows(r io.Reader) ([]model.RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var rows []model.RawRow
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading transactions CSV: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if len(rows) == 0 {
			rec[colDate] = strings.TrimPrefix(rec[colDate], utf8BOM)
		}
		rows = append(rows, UnmarshalRow(line, rec))
	}
	return rows, nil
}

// UnmarshalRow converts a CSV record to a RawRow.
func UnmarshalRow(line int, record []string) model.RawRow {
	return model.RawRow{
		Line:        line,
		DateText:    strings.TrimSpace(record[colDate]),
		AmountText:  strings.TrimSpace(record[colAmount]),
		Symbol1:     record[colSymbol1],
		Symbol2:     record[colSymbol2],
		Description: strings.TrimSpace(record[colDesc]),
	}
}

// Load opens path and reads its rows.
func Load(path string) ([]model.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rows, err := ReadRows(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return rows, nil
}

package pemcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ErrEmptyRecord is returned when a Record with no fields is written.
var ErrEmptyRecord = errors.New("record has no fields")

// WriteCSV writes a Record as two CSV rows: a header of keys and one
// data row of the corresponding values, RFC 4180 quoted as needed.
func WriteCSV(w io.Writer, rec *Record) error {
	if rec.Len() == 0 {
		return ErrEmptyRecord
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(rec.Keys()); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	if err := cw.Write(rec.Values()); err != nil {
		return fmt.Errorf("writing CSV row: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSVRecord parses two-row CSV data back into a Record. The
// inverse of WriteCSV.
func ReadCSVRecord(r io.Reader) (*Record, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(rows) != 2 {
		return nil, fmt.Errorf("expected 2 CSV rows, got %d", len(rows))
	}
	if len(rows[0]) != len(rows[1]) {
		return nil, fmt.Errorf("header has %d fields but row has %d", len(rows[0]), len(rows[1]))
	}
	rec := NewRecord()
	for i, key := range rows[0] {
		rec.Set(key, rows[1][i])
	}
	return rec, nil
}

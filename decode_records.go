package fmstats

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// recordFields is the number of columns of a ledger row.
const recordFields = 6

// DecodeRecords reads a funding manifest ledger in CSV format.
//
// The first row is a header and is skipped. Every other row must have exactly six
// columns: id, url, created_at, updated_at, status and manifest_json.
func DecodeRecords(r io.Reader) ([]RawRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // checked below, to report every faulty line

	var records []RawRecord
	var errs error
	for idx := 0; ; idx++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		if idx == 0 {
			continue
		}
		if len(row) != recordFields {
			line, _ := reader.FieldPos(0)
			errs = errors.Join(errs, fmt.Errorf("line %d: got %d fields, want %d", line, len(row), recordFields))
			continue
		}
		records = append(records, RawRecord{
			ID:           row[0],
			URL:          row[1],
			CreatedAt:    row[2],
			UpdatedAt:    row[3],
			Status:       row[4],
			ManifestJSON: row[5],
		})
	}
	if errs != nil {
		return nil, errs
	}
	return records, nil
}

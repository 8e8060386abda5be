package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
)

// =============================================================================
// CSV READER
// =============================================================================

// ReadCSV reads transactions from CSV input. Column resolution and row
// conversion are identical to the workbook reader; the Sheet option is
// ignored.
func ReadCSV(r io.Reader, opts Options) (*Result, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		rows = append(rows, record)
	}

	return readRows(rows, opts)
}

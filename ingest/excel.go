package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// =============================================================================
// EXCEL WORKBOOK READER
// =============================================================================

// ReadWorkbook reads transactions from an xlsx workbook. The header row is
// the first non-empty row; columns are resolved once against the mapping.
// Rows without a parseable posting date are counted in Result.Skipped.
func ReadWorkbook(r io.Reader, opts Options) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	return readRows(rows, opts)
}

// SheetNames lists the worksheets of an xlsx workbook, for sheet selection.
func SheetNames(r io.Reader) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

// readRows applies the mapping and row conversion to raw rows. Shared with
// the CSV reader.
func readRows(rows [][]string, opts Options) (*Result, error) {
	res := &Result{}

	header := -1
	for i, row := range rows {
		if !emptyRow(row) {
			header = i
			break
		}
	}
	if header < 0 {
		return res, nil
	}

	cols := opts.mapping().resolve(rows[header])
	if cols.date < 0 {
		return nil, fmt.Errorf("no date column found in header %v", rows[header])
	}

	for _, row := range rows[header+1:] {
		if emptyRow(row) {
			continue
		}
		tx, kind := convertRow(row, cols, opts.dueDays(), res)
		switch kind {
		case rowTransaction:
			res.Transactions = append(res.Transactions, tx)
		case rowDropped:
			res.Skipped++
		}
	}
	return res, nil
}

func emptyRow(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}

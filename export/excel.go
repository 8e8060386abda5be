/*
Package export renders reconciliation reports as xlsx workbooks.

PURPOSE:
  Formats a ledger.Report into the three-sheet workbook layout the
  receivables team works with: "Overdue Amounts", "Pending Credits", and
  "Balance Summary". Formatting only; no numeric value is altered.

SHEET LAYOUT:
  Overdue Amounts: Credit Date | Amount | Due Date | Unpaid | Interest |
                   Total Due, with a TOTALS row.
  Pending Credits: Credit Date | Amount | Due Date | Unpaid | Days
                   Remaining, with a TOTAL PENDING row.
  Balance Summary: one Category/Amount row per figure, including the
                   computed closing balance when an opening balance was
                   supplied.
*/
package export

import (
	"fmt"
	"io"

	"github.com/warp/receivables-engine/ledger"
	"github.com/xuri/excelize/v2"
)

const (
	sheetOverdue = "Overdue Amounts"
	sheetPending = "Pending Credits"
	sheetSummary = "Balance Summary"
)

// WriteReport renders the report as an xlsx workbook.
func WriteReport(w io.Writer, report *ledger.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetOverdue); err != nil {
		return err
	}
	if _, err := f.NewSheet(sheetPending); err != nil {
		return err
	}
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return err
	}

	if err := writeOverdue(f, report); err != nil {
		return err
	}
	if err := writePending(f, report); err != nil {
		return err
	}
	if err := writeSummary(f, report); err != nil {
		return err
	}

	return f.Write(w)
}

func writeOverdue(f *excelize.File, report *ledger.Report) error {
	if len(report.Overdue) == 0 {
		return setRow(f, sheetOverdue, 1, "Message", "No overdue amounts found!")
	}

	if err := setRow(f, sheetOverdue, 1,
		"Credit Date", "Amount", "Due Date", "Unpaid", "Interest", "Total Due"); err != nil {
		return err
	}
	row := 2
	for _, o := range report.Overdue {
		if err := setRow(f, sheetOverdue, row,
			o.OriginalDate, o.Amount.Float64(), o.OriginalDueDate,
			o.UnpaidAmount.Float64(), o.Interest.Float64(), o.TotalWithInterest.Float64()); err != nil {
			return err
		}
		row++
	}
	t := report.Totals
	totalDue := t.TotalPrincipalOutstanding.Add(t.TotalInterest)
	return setRow(f, sheetOverdue, row,
		"TOTALS", "", "",
		t.TotalPrincipalOutstanding.Float64(), t.TotalInterest.Float64(), totalDue.Float64())
}

func writePending(f *excelize.File, report *ledger.Report) error {
	if len(report.Pending) == 0 {
		return setRow(f, sheetPending, 1, "Message", "No pending credits found!")
	}

	if err := setRow(f, sheetPending, 1,
		"Credit Date", "Amount", "Due Date", "Unpaid", "Days Remaining"); err != nil {
		return err
	}
	row := 2
	for _, p := range report.Pending {
		if err := setRow(f, sheetPending, row,
			p.OriginalDate, p.Amount.Float64(), p.OriginalDueDate,
			p.UnpaidAmount.Float64(), p.DaysRemaining); err != nil {
			return err
		}
		row++
	}
	return setRow(f, sheetPending, row,
		"TOTAL PENDING", "", "", report.Totals.TotalPendingAmount.Float64(), "")
}

func writeSummary(f *excelize.File, report *ledger.Report) error {
	type line struct {
		category string
		amount   string
	}
	var lines []line

	if report.OpeningBalance != nil {
		lines = append(lines, line{"Opening Balance", report.OpeningBalance.String()})
	}
	lines = append(lines,
		line{"Total Credits Processed", report.Totals.TotalCredits.String()},
		line{"Total Debits Processed", report.Totals.TotalDebits.String()},
	)
	if report.ComputedClosingBalance != nil {
		lines = append(lines, line{"Computed Closing Balance", report.ComputedClosingBalance.String()})
	}
	if report.ClosingBalance != nil {
		lines = append(lines, line{"Actual Closing Balance", report.ClosingBalance.String()})
	}
	lines = append(lines,
		line{"Total Interest", report.Totals.TotalInterest.String()},
		line{"Tax Surcharge", report.Totals.TaxSurcharge.String()},
		line{"Total Amount Due", report.Totals.TotalAmountDue.String()},
		line{"Reference Date", report.ReferenceDate.String()},
	)

	if err := setRow(f, sheetSummary, 1, "Category", "Amount"); err != nil {
		return err
	}
	for i, l := range lines {
		if err := setRow(f, sheetSummary, i+2, l.category, l.amount); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	ref, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell ref for row %d: %w", row, err)
	}
	return f.SetSheetRow(sheet, ref, &values)
}

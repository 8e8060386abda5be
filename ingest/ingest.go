/*
Package ingest turns heterogeneous spreadsheet/CSV input into canonical
transaction records for the reconciliation engine.

PURPOSE:
  All raw-text handling lives here: column-name sniffing, locale and
  spreadsheet date formats, currency symbols, thousands separators, and
  the special "opening balance" / "closing balance" label rows. The
  engine consumes only ledger.CanonicalTransaction and never re-parses
  raw cells.

COLUMN SNIFFING:
  Logical fields are resolved to physical columns exactly once per file,
  through a mapping of field -> matcher function. Matchers are plain
  header predicates; the defaults accept any header containing "date",
  "debit", "credit", "180 days"/"due", and "particular".

ROW POLICY:
  Rows that fail date parsing are dropped (they never reach the engine);
  amounts that fail parsing are treated as zero for that side. There is
  no catch-and-default control flow: every parse helper returns an
  explicit ok flag.

SEE ALSO:
  - excel.go: Workbook reader (excelize)
  - csv.go: CSV reader
  - parse.go: Date and amount parse helpers
*/
package ingest

import (
	"strings"

	"github.com/warp/receivables-engine/ledger"
)

// DefaultDueDays is the contractual credit period applied when the input
// carries no due-date column: each sale falls due 180 days after posting.
const DefaultDueDays = 180

// =============================================================================
// COLUMN MAPPING - logical field -> header matcher
// =============================================================================

// FieldMatcher reports whether a header cell names the logical field.
type FieldMatcher func(header string) bool

// Contains returns a matcher accepting any header containing the substring,
// case-insensitively.
func Contains(substr string) FieldMatcher {
	lower := strings.ToLower(substr)
	return func(header string) bool {
		return strings.Contains(strings.ToLower(strings.TrimSpace(header)), lower)
	}
}

// ContainsAny returns a matcher accepting a header matching any substring.
func ContainsAny(substrs ...string) FieldMatcher {
	matchers := make([]FieldMatcher, len(substrs))
	for i, s := range substrs {
		matchers[i] = Contains(s)
	}
	return func(header string) bool {
		for _, m := range matchers {
			if m(header) {
				return true
			}
		}
		return false
	}
}

// Mapping resolves logical fields to physical columns.
type Mapping struct {
	Date        FieldMatcher
	Debit       FieldMatcher
	Credit      FieldMatcher
	DueDate     FieldMatcher
	Particulars FieldMatcher
}

// DefaultMapping matches the headers the original trade-credit sheets use.
func DefaultMapping() Mapping {
	return Mapping{
		Date:        Contains("date"),
		Debit:       Contains("debit"),
		Credit:      Contains("credit"),
		DueDate:     ContainsAny("180 days", "due"),
		Particulars: Contains("particular"),
	}
}

// columns holds resolved column indexes; -1 means the field is absent.
type columns struct {
	date        int
	debit       int
	credit      int
	dueDate     int
	particulars int
}

// resolve sniffs the header row once. The date matcher is applied after the
// due-date matcher so that a "Due Date" header does not claim the date slot.
func (m Mapping) resolve(header []string) columns {
	cols := columns{date: -1, debit: -1, credit: -1, dueDate: -1, particulars: -1}
	for i, h := range header {
		switch {
		case cols.dueDate < 0 && m.DueDate != nil && m.DueDate(h):
			cols.dueDate = i
		case cols.date < 0 && m.Date != nil && m.Date(h):
			cols.date = i
		case cols.debit < 0 && m.Debit != nil && m.Debit(h):
			cols.debit = i
		case cols.credit < 0 && m.Credit != nil && m.Credit(h):
			cols.credit = i
		case cols.particulars < 0 && m.Particulars != nil && m.Particulars(h):
			cols.particulars = i
		}
	}
	return cols
}

// =============================================================================
// OPTIONS AND RESULT
// =============================================================================

// Options configures a read. The zero value gets the default mapping, the
// first sheet, and the 180-day due policy.
type Options struct {
	// Mapping overrides the default column matchers.
	Mapping *Mapping

	// Sheet selects a worksheet by name; empty means the first sheet.
	Sheet string

	// DueDays is the fallback credit period when no due-date column exists.
	// Zero means DefaultDueDays.
	DueDays int
}

func (o Options) mapping() Mapping {
	if o.Mapping != nil {
		return *o.Mapping
	}
	return DefaultMapping()
}

func (o Options) dueDays() int {
	if o.DueDays > 0 {
		return o.DueDays
	}
	return DefaultDueDays
}

// Result is the adapter's output: the canonical transaction list plus the
// optional balance rows, ready for ledger.Input.
type Result struct {
	Transactions   []ledger.CanonicalTransaction
	OpeningBalance *ledger.Money
	ClosingBalance *ledger.Money

	// Skipped counts rows dropped for unparseable or missing dates.
	Skipped int
}

// Input converts the result into engine input.
func (r *Result) Input() ledger.Input {
	return ledger.Input{
		Transactions:   r.Transactions,
		OpeningBalance: r.OpeningBalance,
		ClosingBalance: r.ClosingBalance,
	}
}

// =============================================================================
// ROW CONVERSION - shared by the Excel and CSV readers
// =============================================================================

// cell returns column i of the row, tolerating ragged rows.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// rowKind classifies the outcome of converting one raw row.
type rowKind int

const (
	rowTransaction rowKind = iota
	rowBalanceLabel
	rowDropped
)

// convertRow turns one data row into a canonical transaction. Balance label
// rows are captured into the result instead of the transaction list; rows
// without a parseable posting date are dropped.
func convertRow(row []string, cols columns, dueDays int, res *Result) (ledger.CanonicalTransaction, rowKind) {
	if cols.particulars >= 0 {
		label := strings.ToLower(strings.TrimSpace(cell(row, cols.particulars)))
		if label == "opening balance" || label == "closing balance" {
			amount, ok := ParseAmount(cell(row, cols.debit))
			if !ok || amount.IsZero() {
				amount, ok = ParseAmount(cell(row, cols.credit))
			}
			// An empty cell parses as zero; only a real value captures
			// the balance.
			if ok && !amount.IsZero() {
				if label == "opening balance" {
					res.OpeningBalance = &amount
				} else {
					res.ClosingBalance = &amount
				}
			}
			return ledger.CanonicalTransaction{}, rowBalanceLabel
		}
	}

	rawDate := cell(row, cols.date)
	date, ok := ParseDate(rawDate)
	if !ok {
		return ledger.CanonicalTransaction{}, rowDropped
	}

	rawDue := cell(row, cols.dueDate)
	due, ok := ParseDate(rawDue)
	if !ok {
		due = date.AddDays(dueDays)
		rawDue = due.String()
	}

	debitAmt, ok := ParseAmount(cell(row, cols.debit))
	if !ok {
		debitAmt = ledger.Zero()
	}
	creditAmt, ok := ParseAmount(cell(row, cols.credit))
	if !ok {
		creditAmt = ledger.Zero()
	}

	return ledger.CanonicalTransaction{
		Date:            date,
		DueDate:         due,
		Debit:           debitAmt,
		Credit:          creditAmt,
		OriginalDate:    strings.TrimSpace(rawDate),
		OriginalDueDate: strings.TrimSpace(rawDue),
	}, rowTransaction
}

/*
report.go - Report model handed to renderers

PURPOSE:
  Plain aggregate of engine outputs. Renderers (workbook export, HTTP DTOs)
  format these values but must not alter them.
*/
package ledger

// =============================================================================
// CLASSIFIED CREDITS
// =============================================================================

// OverdueCredit is a credit past its due date with a positive residual
// balance and/or interest accrued before full settlement. A credit whose
// balance reached exactly zero through late payments is still reported
// here when interest accrued along the way.
type OverdueCredit struct {
	CreditDate      Date
	OriginalDate    string
	Amount          Money
	DueDate         Date
	OriginalDueDate string

	UnpaidAmount      Money
	Interest          Money
	TotalWithInterest Money

	// Payments lists every allocation applied to this credit, on-time and
	// late, in payment-date order.
	Payments []Allocation
}

// PendingCredit is a credit with a positive unpaid balance whose due date
// has not yet passed relative to the reference date.
type PendingCredit struct {
	CreditDate      Date
	OriginalDate    string
	Amount          Money
	DueDate         Date
	OriginalDueDate string

	UnpaidAmount  Money
	DaysRemaining int

	Payments []Allocation
}

// =============================================================================
// TOTALS
// =============================================================================

// Totals aggregates a reconciliation run. TaxSurcharge is a flat rate
// applied on TotalInterest; TotalAmountDue is principal + interest +
// surcharge across all overdue credits.
type Totals struct {
	TotalCredits              Money
	TotalDebits               Money
	TotalPrincipalOutstanding Money
	TotalInterest             Money
	TaxSurcharge              Money
	TotalAmountDue            Money
	TotalPendingAmount        Money
}

// =============================================================================
// REPORT
// =============================================================================

// Report is the full output of one reconciliation run.
type Report struct {
	ReferenceDate Date

	Overdue []OverdueCredit
	Pending []PendingCredit
	Totals  Totals

	// Counts over all credits, including fully settled ones.
	CreditCount  int
	SettledCount int

	// Balance comparison figures (display only; the engine does not
	// reconcile against the reported closing balance).
	OpeningBalance         *Money
	ClosingBalance         *Money
	ComputedClosingBalance *Money
}

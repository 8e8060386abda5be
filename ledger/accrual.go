/*
accrual.go - Simple-interest accrual on overdue balances

PURPOSE:
  Computes the penal interest owed on a credit's unpaid balance from its
  due date to the point(s) where late payments reduce it, and onward to
  the reference date if any balance remains.

INTEREST BASE:
  Interest for each segment accrues on the balance outstanding during that
  segment. A late payment therefore reduces the base for every segment
  after it lands.

DAY COUNTS:
  Whole calendar days, no partial-day proration. Negative day counts
  (out-of-order or malformed dates) clamp to zero.

SEE ALSO:
  - allocator.go: Produces the late-pass allocations consumed here
  - engine.go: Supplies the reference date and daily rate
*/
package ledger

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// ACCRUAL CALCULATOR
// =============================================================================

// AccrualResult is the outcome of accruing interest over a credit's
// overdue span.
type AccrualResult struct {
	// Balance is the principal still unpaid at the reference date.
	Balance Money

	// Interest is the total simple interest accrued across all segments.
	Interest Money
}

// AccrualCalculator computes simple interest per overdue segment.
type AccrualCalculator struct {
	// DailyRate is the fractional interest rate per calendar day.
	DailyRate decimal.Decimal
}

// Accrue walks the overdue span of one credit. The cursor starts at the due
// date with balance = unpaidAtDue. Each late allocation closes a segment:
// interest accrues on the current balance for the days since the cursor,
// then the allocation reduces the balance and advances the cursor. Once the
// balance reaches zero accrual stops early. If balance remains after the
// last allocation, one final segment accrues up to the reference date.
//
// An empty allocation list is valid: the whole span dueDate..referenceDate
// accrues as a single segment.
func (c AccrualCalculator) Accrue(unpaidAtDue Money, dueDate Date, late []Allocation, referenceDate Date) AccrualResult {
	balance := unpaidAtDue
	cursor := dueDate
	interest := Zero()

	for _, alloc := range late {
		days := DaysBetweenClamped(cursor, alloc.PaymentDate)
		interest = interest.Add(segmentInterest(balance, c.DailyRate, days))
		balance = balance.Sub(alloc.Amount)
		cursor = alloc.PaymentDate
		if !balance.IsPositive() {
			break
		}
	}

	if balance.IsPositive() {
		days := DaysBetweenClamped(cursor, referenceDate)
		interest = interest.Add(segmentInterest(balance, c.DailyRate, days))
	}

	return AccrualResult{Balance: balance, Interest: interest}
}

func segmentInterest(base Money, dailyRate decimal.Decimal, days int) Money {
	if days <= 0 {
		return Zero()
	}
	return base.Mul(dailyRate).Mul(decimal.NewFromInt(int64(days)))
}

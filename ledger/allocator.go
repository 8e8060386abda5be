/*
allocator.go - FIFO matching of debit capacity against credit principal

PURPOSE:
  Determines which payments settle which invoices. Matching is strictly
  first-in-first-out over entries sorted ascending by date, with ties
  broken by original input order, so allocation results are reproducible.

TWO PASSES PER CREDIT:
  On-time pass: debits dated within [credit.Date, credit.DueDate].
    A payment cannot predate the sale, and this pass only counts payments
    arriving on or before the due date.
  Late pass: debits dated strictly after credit.DueDate (but never before
    credit.Date), applied against whatever principal survived the on-time
    pass.

SHARED DEBIT STATE:
  Each debit's Remaining is shared across all credits within one run:
  capacity consumed by an earlier credit is gone for later credits. The
  DebitLedger owns that state and is scoped to a single reconciliation
  call, never to the process.

SEE ALSO:
  - accrual.go: Consumes the late-pass allocations per credit
  - engine.go: Drives both passes in credit date order
*/
package ledger

// =============================================================================
// DEBIT LEDGER - Per-run remaining capacities
// =============================================================================

// DebitLedger holds the mutable Remaining state for every debit in one
// reconciliation run. Construct a fresh ledger per run; it is not safe to
// share across concurrent runs.
type DebitLedger struct {
	debits []DebitEntry
}

// NewDebitLedger takes ownership of the given debits, which must already be
// sorted ascending by date with stable input-order ties.
func NewDebitLedger(debits []DebitEntry) *DebitLedger {
	return &DebitLedger{debits: debits}
}

// Entries exposes the debit list for read-only inspection.
func (l *DebitLedger) Entries() []DebitEntry { return l.debits }

// Remaining returns the unallocated capacity of debit i.
func (l *DebitLedger) Remaining(i int) Money { return l.debits[i].Remaining }

// =============================================================================
// ALLOCATOR
// =============================================================================

// Allocator matches debit capacity against credit principal.
type Allocator struct {
	Debits *DebitLedger
}

// AllocateOnTime runs the on-time pass for one credit: debits dated within
// [credit.Date, credit.DueDate], ascending. Returns the allocations made and
// the principal left unpaid at the due date.
func (a *Allocator) AllocateOnTime(credit CreditEntry) ([]Allocation, Money) {
	return a.allocate(credit.Amount, func(d DebitEntry) bool {
		return d.Date.AfterOrEqual(credit.Date) && d.Date.BeforeOrEqual(credit.DueDate)
	})
}

// AllocateLate runs the late pass against the residual principal: debits
// dated strictly after the due date, ascending. A payment still cannot
// predate the sale, which matters when a due date precedes its own posting
// date (tolerated input, see WarnDueBeforePosting).
func (a *Allocator) AllocateLate(credit CreditEntry, residual Money) ([]Allocation, Money) {
	return a.allocate(residual, func(d DebitEntry) bool {
		return d.Date.AfterOrEqual(credit.Date) && d.Date.After(credit.DueDate)
	})
}

// allocate scans debits in ledger order, taking min(need, remaining) from
// each eligible debit until the need is exhausted. Exhausted debits and
// zero amounts are skipped; there are no error conditions.
func (a *Allocator) allocate(need Money, eligible func(DebitEntry) bool) ([]Allocation, Money) {
	var allocations []Allocation
	for i := range a.Debits.debits {
		if !need.IsPositive() {
			break
		}
		d := &a.Debits.debits[i]
		if !d.Remaining.IsPositive() || !eligible(*d) {
			continue
		}
		taken := need.Min(d.Remaining)
		allocations = append(allocations, Allocation{
			PaymentDate:  d.Date,
			Amount:       taken,
			OriginalDate: d.OriginalDate,
			DebitIndex:   i,
		})
		d.Remaining = d.Remaining.Sub(taken)
		need = need.Sub(taken)
	}
	return allocations, need
}

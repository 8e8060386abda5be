/*
engine.go - Reconciliation orchestration, classification, and totals

PURPOSE:
  End-to-end run producing the report model:
    1. Partition canonical transactions into credits and debits
    2. Sort both ascending by date, stable on input order
    3. Determine the reference date (max transaction date, or override)
    4. Per credit: on-time pass; classify Settled / Pending / Overdue,
       running the late pass and accrual calculator for overdue credits
    5. Aggregate totals, tax surcharge, and amount due

CLASSIFICATION:
  Settled: principal fully covered by on-time payments (or late payments
           with no interest accrued).
  Pending: positive balance, due date still in the future relative to the
           reference date; carries days remaining.
  Overdue: positive residual balance past due, or interest accrued before
           late payments brought the balance to zero.

PURITY:
  Reconcile is a pure function of its input and configuration aside from
  optional progress notifications to an observer. Running it twice on the
  same input yields an identical report.

SEE ALSO:
  - allocator.go, accrual.go: The two passes and interest computation
  - report.go: Output model
*/
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CONFIGURATION
// =============================================================================

// Policy defaults. Both rates are fractional per-day / flat factors and can
// be overridden per run.
var (
	DefaultDailyRate     = decimal.RequireFromString("0.18")
	DefaultSurchargeRate = decimal.RequireFromString("0.18")
)

// ProgressObserver receives non-semantic progress notifications for
// long-running reconciliations.
type ProgressObserver interface {
	Progress(processed, total int)
}

// Config carries the per-run policy knobs.
type Config struct {
	// DailyRate is the fractional penal interest rate per calendar day.
	DailyRate decimal.Decimal

	// SurchargeRate is the flat tax rate applied on total accrued interest.
	SurchargeRate decimal.Decimal

	// ReferenceDateOverride replaces the computed max-date reference.
	ReferenceDateOverride *Date

	// Observer, when non-nil, is notified once per credit processed.
	Observer ProgressObserver
}

// DefaultConfig returns the policy defaults with no override.
func DefaultConfig() Config {
	return Config{
		DailyRate:     DefaultDailyRate,
		SurchargeRate: DefaultSurchargeRate,
	}
}

// Input is the canonical transaction set plus the optional balance rows the
// ingestion adapter extracted.
type Input struct {
	Transactions []CanonicalTransaction

	OpeningBalance *Money
	ClosingBalance *Money
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine runs reconciliations. It holds only configuration; every call to
// Reconcile builds fresh working state, so one Engine may serve concurrent
// runs.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Reconcile classifies every credit and aggregates totals. It returns the
// report, the accumulated row warnings, and ErrNoValidDates when no
// transaction carries a valid date.
func (e *Engine) Reconcile(in Input) (*Report, []RowWarning, error) {
	credits, debits, totals, warnings := partition(in.Transactions)

	referenceDate, ok := e.referenceDate(in.Transactions)
	if !ok {
		return nil, warnings, ErrNoValidDates
	}

	sort.SliceStable(credits, func(i, j int) bool { return creditLess(credits[i], credits[j]) })
	sort.SliceStable(debits, func(i, j int) bool { return debitLess(debits[i], debits[j]) })

	allocator := &Allocator{Debits: NewDebitLedger(debits)}
	accrual := AccrualCalculator{DailyRate: e.cfg.DailyRate}

	report := &Report{
		ReferenceDate: referenceDate,
		CreditCount:   len(credits),
	}

	for i, credit := range credits {
		onTime, unpaidAtDue := allocator.AllocateOnTime(credit)

		switch {
		case !unpaidAtDue.IsPositive():
			report.SettledCount++

		case credit.DueDate.After(referenceDate):
			report.Pending = append(report.Pending, PendingCredit{
				CreditDate:      credit.Date,
				OriginalDate:    credit.OriginalDate,
				Amount:          credit.Amount,
				DueDate:         credit.DueDate,
				OriginalDueDate: credit.OriginalDueDate,
				UnpaidAmount:    unpaidAtDue,
				DaysRemaining:   DaysBetweenClamped(referenceDate, credit.DueDate),
				Payments:        onTime,
			})
			totals.TotalPendingAmount = totals.TotalPendingAmount.Add(unpaidAtDue)

		default:
			late, _ := allocator.AllocateLate(credit, unpaidAtDue)
			result := accrual.Accrue(unpaidAtDue, credit.DueDate, late, referenceDate)

			if result.Balance.IsPositive() || result.Interest.IsPositive() {
				report.Overdue = append(report.Overdue, OverdueCredit{
					CreditDate:        credit.Date,
					OriginalDate:      credit.OriginalDate,
					Amount:            credit.Amount,
					DueDate:           credit.DueDate,
					OriginalDueDate:   credit.OriginalDueDate,
					UnpaidAmount:      result.Balance,
					Interest:          result.Interest,
					TotalWithInterest: result.Balance.Add(result.Interest),
					Payments:          append(onTime, late...),
				})
				totals.TotalPrincipalOutstanding = totals.TotalPrincipalOutstanding.Add(result.Balance)
				totals.TotalInterest = totals.TotalInterest.Add(result.Interest)
			} else {
				report.SettledCount++
			}
		}

		if e.cfg.Observer != nil {
			e.cfg.Observer.Progress(i+1, len(credits))
		}
	}

	totals.TaxSurcharge = totals.TotalInterest.Mul(e.cfg.SurchargeRate)
	totals.TotalAmountDue = totals.TotalPrincipalOutstanding.
		Add(totals.TotalInterest).
		Add(totals.TaxSurcharge)
	report.Totals = totals

	report.OpeningBalance = in.OpeningBalance
	report.ClosingBalance = in.ClosingBalance
	if in.OpeningBalance != nil {
		computed := in.OpeningBalance.Add(totals.TotalCredits).Sub(totals.TotalDebits)
		report.ComputedClosingBalance = &computed
	}

	return report, warnings, nil
}

// referenceDate is the maximum date across all transactions, unless the
// configuration supplies an override.
func (e *Engine) referenceDate(txs []CanonicalTransaction) (Date, bool) {
	if e.cfg.ReferenceDateOverride != nil {
		return *e.cfg.ReferenceDateOverride, true
	}
	var max Date
	found := false
	for _, tx := range txs {
		if tx.Date.IsZero() {
			continue
		}
		if !found || tx.Date.After(max) {
			max = tx.Date
			found = true
		}
	}
	return max, found
}

// =============================================================================
// PARTITIONING
// =============================================================================

// partition splits canonical rows into credit and debit entries, summing raw
// totals and recording warnings for tolerated inconsistencies. A row with
// both sides positive contributes to both lists.
func partition(txs []CanonicalTransaction) ([]CreditEntry, []DebitEntry, Totals, []RowWarning) {
	var (
		credits  []CreditEntry
		debits   []DebitEntry
		warnings []RowWarning
	)
	totals := Totals{
		TotalCredits:              Zero(),
		TotalDebits:               Zero(),
		TotalPrincipalOutstanding: Zero(),
		TotalInterest:             Zero(),
		TaxSurcharge:              Zero(),
		TotalAmountDue:            Zero(),
		TotalPendingAmount:        Zero(),
	}

	for i, tx := range txs {
		if tx.Date.IsZero() {
			continue
		}
		if tx.Credit.IsPositive() && tx.Debit.IsPositive() {
			warnings = append(warnings, RowWarning{Row: i, Code: WarnBothSidesPositive, Date: tx.Date})
		}
		if tx.Credit.IsPositive() {
			if !tx.DueDate.IsZero() && tx.DueDate.Before(tx.Date) {
				warnings = append(warnings, RowWarning{Row: i, Code: WarnDueBeforePosting, Date: tx.Date})
			}
			credits = append(credits, CreditEntry{
				Date:            tx.Date,
				DueDate:         tx.DueDate,
				Amount:          tx.Credit,
				OriginalDate:    tx.OriginalDate,
				OriginalDueDate: tx.OriginalDueDate,
				seq:             i,
			})
			totals.TotalCredits = totals.TotalCredits.Add(tx.Credit)
		}
		if tx.Debit.IsPositive() {
			debits = append(debits, DebitEntry{
				Date:         tx.Date,
				Amount:       tx.Debit,
				Remaining:    tx.Debit,
				OriginalDate: tx.OriginalDate,
				seq:          i,
			})
			totals.TotalDebits = totals.TotalDebits.Add(tx.Debit)
		}
	}

	return credits, debits, totals, warnings
}

func creditLess(a, b CreditEntry) bool {
	if a.Date.Equal(b.Date) {
		return a.seq < b.seq
	}
	return a.Date.Before(b.Date)
}

func debitLess(a, b DebitEntry) bool {
	if a.Date.Equal(b.Date) {
		return a.seq < b.seq
	}
	return a.Date.Before(b.Date)
}

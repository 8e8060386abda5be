/*
Package ledger provides the receivables reconciliation and accrual engine.

PURPOSE:
  This package contains the core types and algorithms for reconciling a
  ledger of dated credit and debit entries: matching payments against
  invoices, determining which invoices remain unpaid past their due date,
  and computing penal interest (plus a tax surcharge) on overdue balances
  as of a reference date.

KEY CONCEPTS IN THIS FILE (types.go):
  - Money: A monetary amount backed by decimal.Decimal
  - CanonicalTransaction: An immutable ledger row from the ingestion adapter
  - CreditEntry / DebitEntry: Engine-internal derived entries
  - Allocation: Part of a debit assigned to settle part of a credit

DESIGN PRINCIPLES:
  1. Immutability: Canonical transactions are never modified
  2. Precision: Uses decimal.Decimal to avoid floating-point errors
  3. Determinism: Same input and configuration always produces the same report
  4. Statelessness: A reconciliation run keeps no state between calls

USAGE:
  engine := ledger.NewEngine(ledger.DefaultConfig())
  report, warnings, err := engine.Reconcile(ledger.Input{Transactions: txs})

SEE ALSO:
  - allocator.go: Debit-to-credit matching
  - accrual.go: Simple-interest accrual over overdue segments
  - engine.go: Orchestration, classification, and totals
*/
package ledger

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Monetary amount (single currency)
// =============================================================================

type Money struct {
	Value decimal.Decimal
}

func NewMoney(value float64) Money {
	return Money{Value: decimal.NewFromFloat(value)}
}

func NewMoneyFromInt(value int64) Money {
	return Money{Value: decimal.NewFromInt(value)}
}

// MustParseMoney panics on an invalid decimal string. For fixtures and
// constants only; runtime input goes through the ingest parse helpers.
func MustParseMoney(s string) Money {
	return Money{Value: decimal.RequireFromString(s)}
}

func Zero() Money { return Money{Value: decimal.Zero} }

func (m Money) Add(b Money) Money              { return Money{Value: m.Value.Add(b.Value)} }
func (m Money) Sub(b Money) Money              { return Money{Value: m.Value.Sub(b.Value)} }
func (m Money) Mul(s decimal.Decimal) Money    { return Money{Value: m.Value.Mul(s)} }
func (m Money) Neg() Money                     { return Money{Value: m.Value.Neg()} }
func (m Money) IsNegative() bool               { return m.Value.IsNegative() }
func (m Money) IsZero() bool                   { return m.Value.IsZero() }
func (m Money) IsPositive() bool               { return m.Value.IsPositive() }
func (m Money) GreaterThan(b Money) bool       { return m.Value.GreaterThan(b.Value) }
func (m Money) LessThan(b Money) bool          { return m.Value.LessThan(b.Value) }
func (m Money) Equal(b Money) bool             { return m.Value.Equal(b.Value) }
func (m Money) Min(b Money) Money              { if m.LessThan(b) { return m }; return b }
func (m Money) Max(b Money) Money              { if m.GreaterThan(b) { return m }; return b }
func (m Money) Float64() float64               { f, _ := m.Value.Float64(); return f }
func (m Money) String() string                 { return m.Value.StringFixed(2) }

// =============================================================================
// CANONICAL TRANSACTION - Immutable input row
// =============================================================================

// CanonicalTransaction is one ledger row as produced by the ingestion
// adapter. The adapter owns all raw-text parsing; the engine never sees
// spreadsheet cells. OriginalDate and OriginalDueDate carry the source
// formatting for pass-through display and are never used in comparisons.
//
// Well-formed rows have a positive value in at most one of Debit/Credit,
// but the engine tolerates both being set (it records a warning) or both
// being zero (the row is ignored).
type CanonicalTransaction struct {
	Date    Date
	DueDate Date
	Debit   Money
	Credit  Money

	OriginalDate    string
	OriginalDueDate string
}

// =============================================================================
// DERIVED ENTRIES - Engine-internal working state
// =============================================================================

// CreditEntry is a sale/invoice awaiting settlement.
type CreditEntry struct {
	Date            Date
	DueDate         Date
	Amount          Money
	OriginalDate    string
	OriginalDueDate string

	// seq preserves original input order for stable tie-breaking.
	seq int
}

// DebitEntry is a payment received. Remaining starts equal to Amount and
// only ever decreases as the allocator assigns it to credits; once it
// reaches zero the debit is exhausted and is never reused. Remaining is
// local to a single reconciliation run.
type DebitEntry struct {
	Date         Date
	Amount       Money
	Remaining    Money
	OriginalDate string

	seq int
}

// Allocation assigns part of a debit's amount to a credit's principal.
type Allocation struct {
	PaymentDate  Date
	Amount       Money
	OriginalDate string

	// DebitIndex identifies the paying debit within the run's debit ledger.
	DebitIndex int
}

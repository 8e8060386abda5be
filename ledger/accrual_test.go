package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/warp/receivables-engine/ledger"
)

func rate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// =============================================================================
// SINGLE-SEGMENT ACCRUAL
// =============================================================================

func TestAccrual_NoLatePayments_SingleSegment(t *testing.T) {
	// GIVEN: 1000 unpaid at due day 10, no late payments, reference day 20
	// WHEN: Accruing at 1% per day
	// THEN: 10 days on 1000 = 100 interest, balance unchanged

	calc := ledger.AccrualCalculator{DailyRate: rate("0.01")}
	result := calc.Accrue(money(1000), day(10), nil, day(20))

	if !result.Balance.Equal(money(1000)) {
		t.Errorf("expected balance 1000, got %v", result.Balance)
	}
	if !result.Interest.Equal(money(100)) {
		t.Errorf("expected interest 100, got %v", result.Interest)
	}
}

func TestAccrual_ZeroRate_NoInterest(t *testing.T) {
	// GIVEN: An overdue balance with a zero daily rate
	// WHEN: Accruing across late payments and the final segment
	// THEN: Interest is exactly zero

	calc := ledger.AccrualCalculator{DailyRate: decimal.Zero}
	late := []ledger.Allocation{{PaymentDate: day(15), Amount: money(400)}}
	result := calc.Accrue(money(1000), day(10), late, day(20))

	if !result.Interest.IsZero() {
		t.Errorf("expected zero interest, got %v", result.Interest)
	}
	if !result.Balance.Equal(money(600)) {
		t.Errorf("expected balance 600, got %v", result.Balance)
	}
}

// =============================================================================
// SEGMENTED ACCRUAL - interest on the balance outstanding per segment
// =============================================================================

func TestAccrual_PartialLatePayment_TwoSegments(t *testing.T) {
	// GIVEN: 1000 unpaid at due day 10, 400 paid late on day 15, reference day 20
	// WHEN: Accruing at 1% per day
	// THEN: 1000 x 0.01 x 5 + 600 x 0.01 x 5 = 50 + 30 = 80; balance 600

	calc := ledger.AccrualCalculator{DailyRate: rate("0.01")}
	late := []ledger.Allocation{{PaymentDate: day(15), Amount: money(400)}}
	result := calc.Accrue(money(1000), day(10), late, day(20))

	if !result.Balance.Equal(money(600)) {
		t.Errorf("expected balance 600, got %v", result.Balance)
	}
	if !result.Interest.Equal(money(80)) {
		t.Errorf("expected interest 80, got %v", result.Interest)
	}
}

func TestAccrual_FullyPaidLate_StopsEarly(t *testing.T) {
	// GIVEN: 1000 unpaid at due day 10, fully paid late on day 14
	// WHEN: Accruing at 1% per day with reference day 30
	// THEN: Only the 4-day segment accrues; no final segment

	calc := ledger.AccrualCalculator{DailyRate: rate("0.01")}
	late := []ledger.Allocation{{PaymentDate: day(14), Amount: money(1000)}}
	result := calc.Accrue(money(1000), day(10), late, day(30))

	if result.Balance.IsPositive() {
		t.Errorf("expected zero balance, got %v", result.Balance)
	}
	if !result.Interest.Equal(money(40)) {
		t.Errorf("expected interest 40, got %v", result.Interest)
	}
}

func TestAccrual_MonotonicBalance(t *testing.T) {
	// GIVEN: A sequence of late payments
	// WHEN: Replaying the accrual trace
	// THEN: Balance is non-increasing and never negative at segment boundaries

	late := []ledger.Allocation{
		{PaymentDate: day(12), Amount: money(300)},
		{PaymentDate: day(16), Amount: money(300)},
		{PaymentDate: day(19), Amount: money(400)},
	}

	balance := money(1000)
	for _, alloc := range late {
		if balance.IsNegative() {
			t.Fatalf("balance went negative before payment on %s", alloc.PaymentDate)
		}
		next := balance.Sub(alloc.Amount)
		if next.GreaterThan(balance) {
			t.Fatalf("balance increased at %s", alloc.PaymentDate)
		}
		balance = next
	}

	calc := ledger.AccrualCalculator{DailyRate: rate("0.01")}
	result := calc.Accrue(money(1000), day(10), late, day(25))
	if result.Balance.IsNegative() {
		t.Errorf("final balance negative: %v", result.Balance)
	}
}

// =============================================================================
// DAY-COUNT EDGE CASES
// =============================================================================

func TestAccrual_OutOfOrderPaymentDate_ClampsToZeroDays(t *testing.T) {
	// GIVEN: A late allocation dated before the due date (malformed input)
	// WHEN: Accruing
	// THEN: The negative day count clamps to zero; no interest for that segment

	calc := ledger.AccrualCalculator{DailyRate: rate("0.01")}
	late := []ledger.Allocation{{PaymentDate: day(8), Amount: money(1000)}}
	result := calc.Accrue(money(1000), day(10), late, day(20))

	if !result.Interest.IsZero() {
		t.Errorf("expected zero interest, got %v", result.Interest)
	}
}

func TestAccrual_ReferenceBeforeDue_NoFinalInterest(t *testing.T) {
	// GIVEN: Reference date earlier than the due date
	// WHEN: Accruing with no late payments
	// THEN: The final segment clamps to zero days

	calc := ledger.AccrualCalculator{DailyRate: rate("0.01")}
	result := calc.Accrue(money(1000), day(10), nil, day(5))

	if !result.Interest.IsZero() {
		t.Errorf("expected zero interest, got %v", result.Interest)
	}
	if !result.Balance.Equal(money(1000)) {
		t.Errorf("expected balance 1000, got %v", result.Balance)
	}
}

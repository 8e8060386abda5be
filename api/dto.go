/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal report model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONETARY VALUES:
  Responses carry amounts twice: a float64 for charting convenience and an
  exact decimal string for anything that gets re-totalled downstream.
  Request amounts are strings and run through the ingest parse helpers, so
  the API accepts the same formats the spreadsheet adapter does.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/config.go: ProfileJSON embedded in requests
*/
package api

import (
	"github.com/warp/receivables-engine/factory"
	"github.com/warp/receivables-engine/ledger"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// TransactionRow is one canonical transaction in a reconcile request.
// Dates accept day-first, ISO, and spreadsheet-serial formats; amounts
// tolerate currency symbols and separators.
type TransactionRow struct {
	Date    string `json:"date"`
	DueDate string `json:"due_date,omitempty"`
	Debit   string `json:"debit,omitempty"`
	Credit  string `json:"credit,omitempty"`
}

// ReconcileRequest submits a transaction set for reconciliation.
type ReconcileRequest struct {
	Transactions   []TransactionRow     `json:"transactions"`
	OpeningBalance *string              `json:"opening_balance,omitempty"`
	ClosingBalance *string              `json:"closing_balance,omitempty"`
	Profile        *factory.ProfileJSON `json:"profile,omitempty"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// MoneyDTO carries an amount as float64 plus its exact decimal string.
type MoneyDTO struct {
	Amount  float64 `json:"amount"`
	Decimal string  `json:"decimal"`
}

func toMoneyDTO(m ledger.Money) MoneyDTO {
	return MoneyDTO{Amount: m.Float64(), Decimal: m.Value.String()}
}

func toMoneyDTOPtr(m *ledger.Money) *MoneyDTO {
	if m == nil {
		return nil
	}
	dto := toMoneyDTO(*m)
	return &dto
}

// PaymentDTO is one allocation applied to a credit.
type PaymentDTO struct {
	PaymentDate string   `json:"payment_date"`
	Allocated   MoneyDTO `json:"allocated"`
}

// OverdueCreditDTO is an overdue credit in API responses.
type OverdueCreditDTO struct {
	CreditDate        string       `json:"credit_date"`
	Amount            MoneyDTO     `json:"amount"`
	DueDate           string       `json:"due_date"`
	UnpaidAmount      MoneyDTO     `json:"unpaid_amount"`
	Interest          MoneyDTO     `json:"interest"`
	TotalWithInterest MoneyDTO     `json:"total_with_interest"`
	Payments          []PaymentDTO `json:"payments,omitempty"`
}

// PendingCreditDTO is a not-yet-due credit in API responses.
type PendingCreditDTO struct {
	CreditDate    string       `json:"credit_date"`
	Amount        MoneyDTO     `json:"amount"`
	DueDate       string       `json:"due_date"`
	UnpaidAmount  MoneyDTO     `json:"unpaid_amount"`
	DaysRemaining int          `json:"days_remaining"`
	Payments      []PaymentDTO `json:"payments,omitempty"`
}

// TotalsDTO aggregates a run.
type TotalsDTO struct {
	TotalCredits              MoneyDTO `json:"total_credits"`
	TotalDebits               MoneyDTO `json:"total_debits"`
	TotalPrincipalOutstanding MoneyDTO `json:"total_principal_outstanding"`
	TotalInterest             MoneyDTO `json:"total_interest"`
	TaxSurcharge              MoneyDTO `json:"tax_surcharge"`
	TotalAmountDue            MoneyDTO `json:"total_amount_due"`
	TotalPendingAmount        MoneyDTO `json:"total_pending_amount"`
}

// WarningDTO is one tolerated input inconsistency.
type WarningDTO struct {
	Row     int    `json:"row"`
	Code    string `json:"code"`
	Date    string `json:"date"`
	Message string `json:"message"`
}

// ReportDTO is the full reconciliation result.
type ReportDTO struct {
	RunID         string             `json:"run_id"`
	ReferenceDate string             `json:"reference_date"`
	Overdue       []OverdueCreditDTO `json:"overdue"`
	Pending       []PendingCreditDTO `json:"pending"`
	Totals        TotalsDTO          `json:"totals"`
	CreditCount   int                `json:"credit_count"`
	SettledCount  int                `json:"settled_count"`
	Warnings      []WarningDTO       `json:"warnings"`

	OpeningBalance         *MoneyDTO `json:"opening_balance,omitempty"`
	ClosingBalance         *MoneyDTO `json:"closing_balance,omitempty"`
	ComputedClosingBalance *MoneyDTO `json:"computed_closing_balance,omitempty"`
}

// RunSummaryDTO is an archived run in listing responses.
type RunSummaryDTO struct {
	ID               string    `json:"id"`
	CreatedAt        string    `json:"created_at"`
	ReferenceDate    string    `json:"reference_date"`
	TransactionCount int       `json:"transaction_count"`
	OverdueCount     int       `json:"overdue_count"`
	PendingCount     int       `json:"pending_count"`
	SettledCount     int       `json:"settled_count"`
	WarningCount     int       `json:"warning_count"`
	Totals           TotalsDTO `json:"totals"`
}

// ScenarioDTO describes a built-in demo dataset.
type ScenarioDTO struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	TransactionCount int    `json:"transaction_count"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toPaymentDTOs(allocs []ledger.Allocation) []PaymentDTO {
	if len(allocs) == 0 {
		return nil
	}
	out := make([]PaymentDTO, len(allocs))
	for i, a := range allocs {
		out[i] = PaymentDTO{
			PaymentDate: displayDate(a.OriginalDate, a.PaymentDate),
			Allocated:   toMoneyDTO(a.Amount),
		}
	}
	return out
}

func toTotalsDTO(t ledger.Totals) TotalsDTO {
	return TotalsDTO{
		TotalCredits:              toMoneyDTO(t.TotalCredits),
		TotalDebits:               toMoneyDTO(t.TotalDebits),
		TotalPrincipalOutstanding: toMoneyDTO(t.TotalPrincipalOutstanding),
		TotalInterest:             toMoneyDTO(t.TotalInterest),
		TaxSurcharge:              toMoneyDTO(t.TaxSurcharge),
		TotalAmountDue:            toMoneyDTO(t.TotalAmountDue),
		TotalPendingAmount:        toMoneyDTO(t.TotalPendingAmount),
	}
}

func toReportDTO(runID string, report *ledger.Report, warnings []ledger.RowWarning) ReportDTO {
	dto := ReportDTO{
		RunID:         runID,
		ReferenceDate: report.ReferenceDate.String(),
		Overdue:       []OverdueCreditDTO{},
		Pending:       []PendingCreditDTO{},
		Totals:        toTotalsDTO(report.Totals),
		CreditCount:   report.CreditCount,
		SettledCount:  report.SettledCount,
		Warnings:      []WarningDTO{},

		OpeningBalance:         toMoneyDTOPtr(report.OpeningBalance),
		ClosingBalance:         toMoneyDTOPtr(report.ClosingBalance),
		ComputedClosingBalance: toMoneyDTOPtr(report.ComputedClosingBalance),
	}

	for _, o := range report.Overdue {
		dto.Overdue = append(dto.Overdue, OverdueCreditDTO{
			CreditDate:        displayDate(o.OriginalDate, o.CreditDate),
			Amount:            toMoneyDTO(o.Amount),
			DueDate:           displayDate(o.OriginalDueDate, o.DueDate),
			UnpaidAmount:      toMoneyDTO(o.UnpaidAmount),
			Interest:          toMoneyDTO(o.Interest),
			TotalWithInterest: toMoneyDTO(o.TotalWithInterest),
			Payments:          toPaymentDTOs(o.Payments),
		})
	}
	for _, p := range report.Pending {
		dto.Pending = append(dto.Pending, PendingCreditDTO{
			CreditDate:    displayDate(p.OriginalDate, p.CreditDate),
			Amount:        toMoneyDTO(p.Amount),
			DueDate:       displayDate(p.OriginalDueDate, p.DueDate),
			UnpaidAmount:  toMoneyDTO(p.UnpaidAmount),
			DaysRemaining: p.DaysRemaining,
			Payments:      toPaymentDTOs(p.Payments),
		})
	}
	for _, w := range warnings {
		dto.Warnings = append(dto.Warnings, WarningDTO{
			Row:     w.Row,
			Code:    string(w.Code),
			Date:    w.Date.String(),
			Message: w.String(),
		})
	}
	return dto
}

func toRunSummaryDTO(run ledger.RunSummary) RunSummaryDTO {
	return RunSummaryDTO{
		ID:               run.ID,
		CreatedAt:        run.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		ReferenceDate:    run.ReferenceDate.String(),
		TransactionCount: run.TransactionCount,
		OverdueCount:     run.OverdueCount,
		PendingCount:     run.PendingCount,
		SettledCount:     run.SettledCount,
		WarningCount:     run.WarningCount,
		Totals:           toTotalsDTO(run.Totals),
	}
}

// displayDate prefers the source-formatted string, falling back to ISO.
func displayDate(original string, date ledger.Date) string {
	if original != "" {
		return original
	}
	return date.String()
}

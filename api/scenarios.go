/*
scenarios.go - Built-in demo datasets

PURPOSE:
  Small, self-contained transaction sets for demos and smoke testing the
  service without uploading a spreadsheet. Each scenario exercises a
  different mix of settled, pending, and overdue outcomes.
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/warp/receivables-engine/ledger"
)

// Scenario is a named demo dataset.
type Scenario struct {
	Name         string
	Description  string
	Transactions []ledger.CanonicalTransaction
}

func date(y int, m time.Month, d int) ledger.Date { return ledger.NewDate(y, m, d) }

func saleRow(posted, due ledger.Date, amount float64) ledger.CanonicalTransaction {
	return ledger.CanonicalTransaction{
		Date:            posted,
		DueDate:         due,
		Credit:          ledger.NewMoney(amount),
		OriginalDate:    posted.String(),
		OriginalDueDate: due.String(),
	}
}

func paymentRow(posted ledger.Date, amount float64) ledger.CanonicalTransaction {
	return ledger.CanonicalTransaction{
		Date:         posted,
		Debit:        ledger.NewMoney(amount),
		OriginalDate: posted.String(),
	}
}

// Scenarios returns the built-in datasets, in display order.
func Scenarios() []Scenario {
	return []Scenario{
		{
			Name:        "clean-quarter",
			Description: "Every sale paid within its credit period; nothing overdue.",
			Transactions: []ledger.CanonicalTransaction{
				saleRow(date(2024, time.January, 5), date(2024, time.July, 3), 50000),
				paymentRow(date(2024, time.February, 20), 50000),
				saleRow(date(2024, time.February, 10), date(2024, time.August, 8), 32000),
				paymentRow(date(2024, time.April, 1), 32000),
			},
		},
		{
			Name:        "late-payers",
			Description: "Partial and late payments leaving overdue balances with accrued interest.",
			Transactions: []ledger.CanonicalTransaction{
				saleRow(date(2023, time.March, 1), date(2023, time.August, 28), 120000),
				paymentRow(date(2023, time.June, 15), 40000),
				paymentRow(date(2023, time.October, 10), 50000),
				saleRow(date(2023, time.May, 20), date(2023, time.November, 16), 75000),
				paymentRow(date(2024, time.January, 5), 25000),
				saleRow(date(2024, time.February, 1), date(2024, time.July, 31), 60000),
			},
		},
		{
			Name:        "mixed-ledger",
			Description: "Settled, pending, and overdue credits in one ledger.",
			Transactions: []ledger.CanonicalTransaction{
				saleRow(date(2024, time.January, 10), date(2024, time.July, 8), 80000),
				paymentRow(date(2024, time.March, 5), 80000),
				saleRow(date(2024, time.February, 15), date(2024, time.August, 13), 45000),
				saleRow(date(2024, time.June, 1), date(2024, time.November, 28), 30000),
				paymentRow(date(2024, time.September, 1), 20000),
			},
		},
	}
}

func findScenario(name string) (Scenario, bool) {
	for _, s := range Scenarios() {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}

// =============================================================================
// SCENARIO ENDPOINTS
// =============================================================================

// ListScenarios returns the built-in datasets.
// GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	dtos := make([]ScenarioDTO, 0)
	for _, s := range Scenarios() {
		dtos = append(dtos, ScenarioDTO{
			Name:             s.Name,
			Description:      s.Description,
			TransactionCount: len(s.Transactions),
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// RunScenario reconciles one built-in dataset with the default configuration.
// POST /api/scenarios/{name}/run
func (h *Handler) RunScenario(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	scenario, ok := findScenario(name)
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown scenario", nil)
		return
	}

	h.run(w, r, h.BaseConfig, ledger.Input{Transactions: scenario.Transactions})
}

/*
scenarios_test.go - Tests for built-in demo datasets
*/
package api

import (
	"net/http"
	"testing"
)

func TestListScenarios(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/scenarios")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	scenarios := decodeBody[[]ScenarioDTO](t, resp)

	if len(scenarios) != 3 {
		t.Fatalf("Expected 3 scenarios, got %d", len(scenarios))
	}
	if scenarios[0].Name != "clean-quarter" {
		t.Errorf("Expected clean-quarter first, got %s", scenarios[0].Name)
	}
	for _, s := range scenarios {
		if s.TransactionCount == 0 {
			t.Errorf("Scenario %s has no transactions", s.Name)
		}
		if s.Description == "" {
			t.Errorf("Scenario %s has no description", s.Name)
		}
	}
}

func TestRunScenario_CleanQuarter(t *testing.T) {
	// GIVEN: The dataset where every sale is paid on time
	srv := newTestServer(t)

	// WHEN: Running it
	resp, err := http.Post(srv.URL+"/api/scenarios/clean-quarter/run", "application/json", nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	report := decodeBody[ReportDTO](t, resp)

	// THEN: Everything settles, nothing owed
	if len(report.Overdue) != 0 {
		t.Errorf("Expected no overdue credits, got %d", len(report.Overdue))
	}
	if len(report.Pending) != 0 {
		t.Errorf("Expected no pending credits, got %d", len(report.Pending))
	}
	if report.SettledCount != 2 {
		t.Errorf("Expected 2 settled credits, got %d", report.SettledCount)
	}
	if report.Totals.TotalAmountDue.Amount != 0 {
		t.Errorf("Expected nothing due, got %v", report.Totals.TotalAmountDue.Amount)
	}
	if report.Totals.TotalCredits.Amount != 82000 {
		t.Errorf("Expected credits 82000, got %v", report.Totals.TotalCredits.Amount)
	}
}

func TestRunScenario_LatePayers(t *testing.T) {
	// GIVEN: The dataset with partial and late payments
	srv := newTestServer(t)

	// WHEN: Running it
	resp, err := http.Post(srv.URL+"/api/scenarios/late-payers/run", "application/json", nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	report := decodeBody[ReportDTO](t, resp)

	// THEN: Two credits are overdue with interest, the newest is pending
	if len(report.Overdue) != 2 {
		t.Fatalf("Expected 2 overdue credits, got %d", len(report.Overdue))
	}
	if len(report.Pending) != 1 {
		t.Fatalf("Expected 1 pending credit, got %d", len(report.Pending))
	}
	if report.SettledCount != 0 {
		t.Errorf("Expected 0 settled credits, got %d", report.SettledCount)
	}
	if report.Totals.TotalInterest.Amount <= 0 {
		t.Errorf("Expected positive interest, got %v", report.Totals.TotalInterest.Amount)
	}
	if report.Pending[0].UnpaidAmount.Amount != 60000 {
		t.Errorf("Expected pending 60000, got %v", report.Pending[0].UnpaidAmount.Amount)
	}

	// And the run is archived like any other
	listResp, err := http.Get(srv.URL + "/api/reconciliations")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	runs := decodeBody[[]RunSummaryDTO](t, listResp)
	if len(runs) != 1 {
		t.Errorf("Expected 1 archived run, got %d", len(runs))
	}
}

func TestRunScenario_Unknown(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/scenarios/nope/run", "application/json", nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", resp.StatusCode)
	}
}

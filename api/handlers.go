/*
handlers.go - HTTP API handlers for the receivables reconciliation service

PURPOSE:
  Exposes the reconciliation engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to the engine,
  ingest adapter, and export renderer.

ENDPOINTS:
  Reconciliations:
    POST /api/reconciliations          Reconcile a canonical transaction set
    POST /api/reconciliations/upload   Reconcile an uploaded xlsx/csv file
    GET  /api/reconciliations          List archived runs
    GET  /api/reconciliations/{id}     Get one archived run

  Scenarios:
    GET  /api/scenarios                List demo datasets
    POST /api/scenarios/{name}/run     Reconcile a demo dataset

OUTPUT FORMATS:
  Reconcile endpoints return JSON by default; ?format=xlsx streams the
  three-sheet workbook instead.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, unparseable input
  - 404: Unknown run or scenario
  - 422: No computable reference date
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo datasets
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/warp/receivables-engine/export"
	"github.com/warp/receivables-engine/factory"
	"github.com/warp/receivables-engine/ingest"
	"github.com/warp/receivables-engine/ledger"
)

// maxUploadBytes bounds uploaded spreadsheets.
const maxUploadBytes = 32 << 20

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Runs ledger.RunStore

	// BaseConfig is the default engine configuration; per-request
	// profiles override it.
	BaseConfig ledger.Config
}

// NewHandler creates a new handler archiving runs to the given store.
func NewHandler(runs ledger.RunStore) *Handler {
	return &Handler{
		Runs:       runs,
		BaseConfig: ledger.DefaultConfig(),
	}
}

// =============================================================================
// RECONCILIATION ENDPOINTS
// =============================================================================

// Reconcile runs the engine over a canonical transaction set.
// POST /api/reconciliations
func (h *Handler) Reconcile(w http.ResponseWriter, r *http.Request) {
	var req ReconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Transactions) == 0 {
		writeError(w, http.StatusBadRequest, "No transactions supplied", nil)
		return
	}

	input, err := h.buildInput(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid transaction data", err)
		return
	}

	cfg, _, err := h.config(req.Profile)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid profile", err)
		return
	}

	h.run(w, r, cfg, input)
}

// ReconcileUpload runs the engine over an uploaded spreadsheet.
// POST /api/reconciliations/upload (multipart: file, optional profile)
func (h *Handler) ReconcileUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form", err)
		return
	}

	var profile *factory.ProfileJSON
	if raw := r.FormValue("profile"); raw != "" {
		profile = &factory.ProfileJSON{}
		if err := json.Unmarshal([]byte(raw), profile); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid profile", err)
			return
		}
	}
	cfg, opts, err := h.config(profile)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid profile", err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing file", err)
		return
	}
	defer file.Close()

	result, err := readUpload(file, header.Filename, opts)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Could not read file", err)
		return
	}

	h.run(w, r, cfg, result.Input())
}

// ListRuns returns archived runs, newest first.
// GET /api/reconciliations
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.Runs.ListRuns(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list runs", err)
		return
	}

	dtos := make([]RunSummaryDTO, 0, len(runs))
	for _, run := range runs {
		dtos = append(dtos, toRunSummaryDTO(run))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetRun returns one archived run.
// GET /api/reconciliations/{id}
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	run, err := h.Runs.GetRun(r.Context(), id)
	if errors.Is(err, ledger.ErrRunNotFound) {
		writeError(w, http.StatusNotFound, "Run not found", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load run", err)
		return
	}
	writeJSON(w, http.StatusOK, toRunSummaryDTO(run))
}

// =============================================================================
// RUN PIPELINE - shared by all reconcile endpoints
// =============================================================================

// run executes the engine, archives the summary, and writes the response in
// the requested format.
func (h *Handler) run(w http.ResponseWriter, r *http.Request, cfg ledger.Config, input ledger.Input) {
	engine := ledger.NewEngine(cfg)
	report, warnings, err := engine.Reconcile(input)
	if ledger.IsDataError(err) {
		writeError(w, http.StatusUnprocessableEntity, "No computable reference date", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Reconciliation failed", err)
		return
	}

	runID := uuid.NewString()
	summary := ledger.RunSummary{
		ID:               runID,
		CreatedAt:        time.Now().UTC(),
		ReferenceDate:    report.ReferenceDate,
		TransactionCount: len(input.Transactions),
		OverdueCount:     len(report.Overdue),
		PendingCount:     len(report.Pending),
		SettledCount:     report.SettledCount,
		WarningCount:     len(warnings),
		Totals:           report.Totals,
	}
	if err := h.Runs.SaveRun(r.Context(), summary); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to archive run", err)
		return
	}

	if r.URL.Query().Get("format") == "xlsx" {
		w.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", "reconciliation-"+runID+".xlsx"))
		if err := export.WriteReport(w, report); err != nil {
			// Headers are already out; nothing sensible left to send.
			return
		}
		return
	}

	writeJSON(w, http.StatusOK, toReportDTO(runID, report, warnings))
}

// buildInput converts request rows into engine input using the same parse
// helpers as the spreadsheet adapter.
func (h *Handler) buildInput(req ReconcileRequest) (ledger.Input, error) {
	input := ledger.Input{}

	for i, row := range req.Transactions {
		date, ok := ingest.ParseDate(row.Date)
		if !ok {
			return input, fmt.Errorf("row %d: unparseable date %q", i, row.Date)
		}
		due, ok := ingest.ParseDate(row.DueDate)
		if !ok {
			due = date.AddDays(ingest.DefaultDueDays)
		}
		debit, ok := ingest.ParseAmount(row.Debit)
		if !ok {
			return input, fmt.Errorf("row %d: unparseable debit %q", i, row.Debit)
		}
		credit, ok := ingest.ParseAmount(row.Credit)
		if !ok {
			return input, fmt.Errorf("row %d: unparseable credit %q", i, row.Credit)
		}
		input.Transactions = append(input.Transactions, ledger.CanonicalTransaction{
			Date:            date,
			DueDate:         due,
			Debit:           debit,
			Credit:          credit,
			OriginalDate:    strings.TrimSpace(row.Date),
			OriginalDueDate: strings.TrimSpace(row.DueDate),
		})
	}

	var err error
	if input.OpeningBalance, err = parseBalance("opening_balance", req.OpeningBalance); err != nil {
		return input, err
	}
	if input.ClosingBalance, err = parseBalance("closing_balance", req.ClosingBalance); err != nil {
		return input, err
	}
	return input, nil
}

func parseBalance(field string, raw *string) (*ledger.Money, error) {
	if raw == nil {
		return nil, nil
	}
	amount, ok := ingest.ParseAmount(*raw)
	if !ok {
		return nil, fmt.Errorf("%s: unparseable amount %q", field, *raw)
	}
	return &amount, nil
}

// config resolves the effective engine configuration and ingest options
// for a request.
func (h *Handler) config(profile *factory.ProfileJSON) (ledger.Config, ingest.Options, error) {
	if profile == nil {
		return h.BaseConfig, ingest.Options{}, nil
	}
	built, err := factory.BuildProfile(*profile)
	if err != nil {
		return ledger.Config{}, ingest.Options{}, err
	}
	return built.Engine, built.Ingest, nil
}

// readUpload picks the reader by file extension.
func readUpload(file io.Reader, filename string, opts ingest.Options) (*ingest.Result, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ingest.ReadCSV(file, opts)
	case ".xlsx":
		return ingest.ReadWorkbook(file, opts)
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(filename))
	}
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

/*
store.go - Run archive interface

PURPOSE:
  Defines the interface between the hosting service and the archive of
  past reconciliation runs. The engine itself keeps no state between runs;
  archiving a summary of each run is a hosting-service concern, used to
  list and inspect history.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: SQLite persistence
  - ledger/store/memory.go: In-memory, for tests and dev
*/
package ledger

import (
	"context"
	"time"
)

// =============================================================================
// RUN SUMMARY - Archived outcome of one reconciliation run
// =============================================================================

// RunSummary captures the headline figures of a completed run. The full
// report is not archived; it is recomputable from the same input.
type RunSummary struct {
	ID        string
	CreatedAt time.Time

	ReferenceDate    Date
	TransactionCount int
	OverdueCount     int
	PendingCount     int
	SettledCount     int
	WarningCount     int

	Totals Totals
}

// =============================================================================
// RUN STORE
// =============================================================================

// RunStore archives run summaries. Writes are append-only; summaries are
// never updated after the fact.
type RunStore interface {
	// SaveRun archives a completed run.
	SaveRun(ctx context.Context, run RunSummary) error

	// ListRuns returns archived runs, newest first.
	ListRuns(ctx context.Context) ([]RunSummary, error)

	// GetRun returns one archived run, or ErrRunNotFound.
	GetRun(ctx context.Context, id string) (RunSummary, error)
}

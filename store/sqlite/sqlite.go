/*
Package sqlite provides a SQLite-backed implementation of the run archive.

PURPOSE:
  Persists summaries of completed reconciliation runs so the hosting
  service can list and inspect history. The engine itself is stateless;
  only headline figures are archived, never engine working state.

APPEND-ONLY ENFORCEMENT:
  - No UPDATE statements on the runs table
  - No DELETE statements on the runs table
  A run summary, once written, is a historical record.

KEY TABLE:
  runs: One row per completed reconciliation run.

MONETARY COLUMNS:
  Stored as TEXT holding exact decimal strings, never as floating point.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so readers don't block
  the writer.

USAGE:
  store, err := sqlite.New("./data/receivables.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - ledger/store.go: Interface definition
  - ledger/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/receivables-engine/ledger"
)

// Store implements ledger.RunStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ ledger.RunStore = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Completed reconciliation runs (append-only)
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		reference_date TEXT NOT NULL,
		transaction_count INTEGER NOT NULL,
		overdue_count INTEGER NOT NULL,
		pending_count INTEGER NOT NULL,
		settled_count INTEGER NOT NULL,
		warning_count INTEGER NOT NULL,
		total_credits TEXT NOT NULL,
		total_debits TEXT NOT NULL,
		total_principal_outstanding TEXT NOT NULL,
		total_interest TEXT NOT NULL,
		tax_surcharge TEXT NOT NULL,
		total_amount_due TEXT NOT NULL,
		total_pending_amount TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RUN STORE IMPLEMENTATION
// =============================================================================

func (s *Store) SaveRun(ctx context.Context, run ledger.RunSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (
			id, created_at, reference_date,
			transaction_count, overdue_count, pending_count, settled_count, warning_count,
			total_credits, total_debits, total_principal_outstanding,
			total_interest, tax_surcharge, total_amount_due, total_pending_amount
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
		run.ReferenceDate.String(),
		run.TransactionCount,
		run.OverdueCount,
		run.PendingCount,
		run.SettledCount,
		run.WarningCount,
		run.Totals.TotalCredits.Value.String(),
		run.Totals.TotalDebits.Value.String(),
		run.Totals.TotalPrincipalOutstanding.Value.String(),
		run.Totals.TotalInterest.Value.String(),
		run.Totals.TaxSurcharge.Value.String(),
		run.Totals.TotalAmountDue.Value.String(),
		run.Totals.TotalPendingAmount.Value.String(),
	)
	if err != nil {
		return fmt.Errorf("save run %s: %w", run.ID, err)
	}
	return nil
}

func (s *Store) ListRuns(ctx context.Context) ([]ledger.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, reference_date,
			transaction_count, overdue_count, pending_count, settled_count, warning_count,
			total_credits, total_debits, total_principal_outstanding,
			total_interest, tax_surcharge, total_amount_due, total_pending_amount
		FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []ledger.RunSummary
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func (s *Store) GetRun(ctx context.Context, id string) (ledger.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, reference_date,
			transaction_count, overdue_count, pending_count, settled_count, warning_count,
			total_credits, total_debits, total_principal_outstanding,
			total_interest, tax_surcharge, total_amount_due, total_pending_amount
		FROM runs WHERE id = ?`, id)
	if err != nil {
		return ledger.RunSummary{}, fmt.Errorf("get run %s: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return ledger.RunSummary{}, err
		}
		return ledger.RunSummary{}, ledger.ErrRunNotFound
	}
	return scanRun(rows)
}

func scanRun(rows *sql.Rows) (ledger.RunSummary, error) {
	var (
		run       ledger.RunSummary
		createdAt string
		refDate   string
		amounts   [7]string
	)
	err := rows.Scan(
		&run.ID, &createdAt, &refDate,
		&run.TransactionCount, &run.OverdueCount, &run.PendingCount,
		&run.SettledCount, &run.WarningCount,
		&amounts[0], &amounts[1], &amounts[2], &amounts[3], &amounts[4], &amounts[5], &amounts[6],
	)
	if err != nil {
		return ledger.RunSummary{}, fmt.Errorf("scan run: %w", err)
	}

	created, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return ledger.RunSummary{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	run.CreatedAt = created

	ref, err := time.Parse("2006-01-02", refDate)
	if err != nil {
		return ledger.RunSummary{}, fmt.Errorf("parse reference_date %q: %w", refDate, err)
	}
	run.ReferenceDate = ledger.DateOf(ref)

	fields := []*ledger.Money{
		&run.Totals.TotalCredits,
		&run.Totals.TotalDebits,
		&run.Totals.TotalPrincipalOutstanding,
		&run.Totals.TotalInterest,
		&run.Totals.TaxSurcharge,
		&run.Totals.TotalAmountDue,
		&run.Totals.TotalPendingAmount,
	}
	for i, field := range fields {
		d, err := decimal.NewFromString(amounts[i])
		if err != nil {
			return ledger.RunSummary{}, fmt.Errorf("parse amount column %d: %w", i, err)
		}
		*field = ledger.Money{Value: d}
	}
	return run, nil
}

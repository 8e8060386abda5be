/*
errors.go - Centralized error and warning types for the ledger engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers (API, CLI) wrap these with transport-specific context.

ERROR CATEGORIES:
  1. Data errors  - Input that makes computation impossible (fatal to a run)
  2. Row warnings - Inconsistent rows the engine tolerates but reports
  3. Store errors - Run-archive lookup failures

USAGE:
  report, warnings, err := engine.Reconcile(input)
  if errors.Is(err, ledger.ErrNoValidDates) {
      // no computable reference date; nothing to report
  }
  for _, w := range warnings {
      log.Println(w)
  }
*/
package ledger

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNoValidDates is returned when no transaction carries a valid date,
	// leaving the run with no computable reference date. Fatal to the run.
	ErrNoValidDates = errors.New("no valid dates found in transaction data")

	// ErrRunNotFound is returned by run stores when an archived run does not exist.
	ErrRunNotFound = errors.New("reconciliation run not found")
)

// IsDataError reports whether err stems from unusable input data, as
// opposed to an internal failure. Transports map data errors to 4xx.
func IsDataError(err error) bool {
	return errors.Is(err, ErrNoValidDates)
}

// =============================================================================
// ROW WARNINGS - Tolerated inconsistencies, accumulated per run
// =============================================================================

type WarningCode string

const (
	// WarnBothSidesPositive flags a row with positive debit AND credit.
	// The engine processes both sides rather than rejecting the row.
	WarnBothSidesPositive WarningCode = "both_sides_positive"

	// WarnDueBeforePosting flags a credit whose due date precedes its own
	// posting date. Day counts involving it clamp to zero.
	WarnDueBeforePosting WarningCode = "due_before_posting"
)

// RowWarning records an inconsistent but tolerated input row. Warnings are
// accumulated during a run and returned alongside the report, never dropped.
type RowWarning struct {
	Row  int // zero-based index into the canonical transaction list
	Code WarningCode
	Date Date
}

func (w RowWarning) String() string {
	return fmt.Sprintf("row %d (%s): %s", w.Row, w.Date, w.Code)
}

package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/receivables-engine/ledger"
	"github.com/warp/receivables-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRun(id string, createdAt time.Time) ledger.RunSummary {
	return ledger.RunSummary{
		ID:               id,
		CreatedAt:        createdAt,
		ReferenceDate:    ledger.NewDate(2024, time.June, 30),
		TransactionCount: 12,
		OverdueCount:     3,
		PendingCount:     2,
		SettledCount:     5,
		WarningCount:     1,
		Totals: ledger.Totals{
			TotalCredits:              ledger.MustParseMoney("10500.50"),
			TotalDebits:               ledger.MustParseMoney("8200.00"),
			TotalPrincipalOutstanding: ledger.MustParseMoney("2300.50"),
			TotalInterest:             ledger.MustParseMoney("145.32"),
			TaxSurcharge:              ledger.MustParseMoney("26.16"),
			TotalAmountDue:            ledger.MustParseMoney("2471.98"),
			TotalPendingAmount:        ledger.MustParseMoney("600.00"),
		},
	}
}

func TestStore_SaveAndGetRun(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	run := sampleRun("run-1", time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, store.SaveRun(ctx, run))

	got, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)

	assert.Equal(t, run.ID, got.ID)
	assert.True(t, got.CreatedAt.Equal(run.CreatedAt))
	assert.True(t, got.ReferenceDate.Equal(run.ReferenceDate))
	assert.Equal(t, run.TransactionCount, got.TransactionCount)
	assert.Equal(t, run.OverdueCount, got.OverdueCount)
	assert.True(t, got.Totals.TotalAmountDue.Equal(run.Totals.TotalAmountDue),
		"amount due = %v", got.Totals.TotalAmountDue)
	assert.True(t, got.Totals.TotalInterest.Equal(run.Totals.TotalInterest))
}

func TestStore_GetRun_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetRun(context.Background(), "missing")
	assert.ErrorIs(t, err, ledger.ErrRunNotFound)
}

func TestStore_ListRuns_NewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	older := sampleRun("run-old", time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC))
	newer := sampleRun("run-new", time.Date(2024, 7, 1, 11, 0, 0, 0, time.UTC))
	require.NoError(t, store.SaveRun(ctx, older))
	require.NoError(t, store.SaveRun(ctx, newer))

	runs, err := store.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-new", runs[0].ID)
	assert.Equal(t, "run-old", runs[1].ID)
}

func TestStore_DuplicateRunID_Rejected(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	run := sampleRun("run-1", time.Now().UTC())
	require.NoError(t, store.SaveRun(ctx, run))
	assert.Error(t, store.SaveRun(ctx, run))
}

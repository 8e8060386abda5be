package ingest_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/receivables-engine/ingest"
	"github.com/warp/receivables-engine/ledger"
)

// =============================================================================
// DATE PARSING
// =============================================================================

func TestParseDate_DayFirstFormats(t *testing.T) {
	cases := []struct {
		in   string
		want ledger.Date
	}{
		{"15-03-2024", ledger.NewDate(2024, time.March, 15)},
		{"15/03/2024", ledger.NewDate(2024, time.March, 15)},
		{"2024-03-15", ledger.NewDate(2024, time.March, 15)},
		{" 01-12-2023 ", ledger.NewDate(2023, time.December, 1)},
	}
	for _, tc := range cases {
		got, ok := ingest.ParseDate(tc.in)
		require.True(t, ok, "ParseDate(%q)", tc.in)
		assert.True(t, got.Equal(tc.want), "ParseDate(%q) = %s, want %s", tc.in, got, tc.want)
	}
}

func TestParseDate_SerialDate(t *testing.T) {
	// Spreadsheet serial 45000 is 2023-03-15 in the 1900 date system.
	got, ok := ingest.ParseDate("45000")
	require.True(t, ok)
	assert.True(t, got.Equal(ledger.NewDate(2023, time.March, 15)), "got %s", got)
}

func TestParseSerialDate_Epoch(t *testing.T) {
	// Serial 1 is 1899-12-31 (epoch 1899-12-30 plus one day).
	got := ingest.ParseSerialDate(1)
	assert.True(t, got.Equal(ledger.NewDate(1899, time.December, 31)), "got %s", got)
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "not a date", "31-31-2024", "--"} {
		_, ok := ingest.ParseDate(in)
		assert.False(t, ok, "ParseDate(%q) should fail", in)
	}
}

// =============================================================================
// AMOUNT PARSING
// =============================================================================

func TestParseAmount_CleansCurrencyAndSeparators(t *testing.T) {
	cases := []struct {
		in   string
		want ledger.Money
	}{
		{"1234.56", ledger.NewMoney(1234.56)},
		{"1,234.56", ledger.NewMoney(1234.56)},
		{"₹1,23,456.78", ledger.NewMoney(123456.78)},
		{"$ 2,500", ledger.NewMoney(2500)},
		{"1234,56", ledger.NewMoney(1234.56)},
		{"(500.00)", ledger.NewMoney(-500)},
		{"-42", ledger.NewMoney(-42)},
		{"", ledger.Zero()},
	}
	for _, tc := range cases {
		got, ok := ingest.ParseAmount(tc.in)
		require.True(t, ok, "ParseAmount(%q)", tc.in)
		assert.True(t, got.Equal(tc.want), "ParseAmount(%q) = %v, want %v", tc.in, got, tc.want)
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, in := range []string{"abc", "-", "12.34.56"} {
		_, ok := ingest.ParseAmount(in)
		assert.False(t, ok, "ParseAmount(%q) should fail", in)
	}
}

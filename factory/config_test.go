package factory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/receivables-engine/factory"
	"github.com/warp/receivables-engine/ledger"
)

func TestParseProfile_Defaults(t *testing.T) {
	profile, err := factory.ParseProfile([]byte(`{}`))
	require.NoError(t, err)

	assert.True(t, profile.Engine.DailyRate.Equal(ledger.DefaultDailyRate))
	assert.True(t, profile.Engine.SurchargeRate.Equal(ledger.DefaultSurchargeRate))
	assert.Nil(t, profile.Engine.ReferenceDateOverride)
	assert.Nil(t, profile.Ingest.Mapping)
}

func TestParseProfile_FullProfile(t *testing.T) {
	data := []byte(`{
		"daily_rate": "0.0324",
		"surcharge_rate": 0.18,
		"reference_date": "30-06-2024",
		"due_days": 90,
		"sheet": "Ledger FY24",
		"columns": {"date": "posted", "credit": "invoiced"}
	}`)

	profile, err := factory.ParseProfile(data)
	require.NoError(t, err)

	assert.True(t, profile.Engine.DailyRate.Equal(decimal.RequireFromString("0.0324")))
	assert.True(t, profile.Engine.SurchargeRate.Equal(decimal.RequireFromString("0.18")))
	require.NotNil(t, profile.Engine.ReferenceDateOverride)
	assert.True(t, profile.Engine.ReferenceDateOverride.Equal(ledger.NewDate(2024, time.June, 30)))
	assert.Equal(t, 90, profile.Ingest.DueDays)
	assert.Equal(t, "Ledger FY24", profile.Ingest.Sheet)
	require.NotNil(t, profile.Ingest.Mapping)
	assert.True(t, profile.Ingest.Mapping.Date("Posted On"))
	assert.True(t, profile.Ingest.Mapping.Credit("Invoiced Amount"))
	// Unspecified fields keep their defaults.
	assert.True(t, profile.Ingest.Mapping.Debit("Debit"))
}

func TestParseProfile_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad json":       `{`,
		"negative rate":  `{"daily_rate": "-0.01"}`,
		"bad date":       `{"reference_date": "tomorrow"}`,
		"unknown column": `{"columns": {"memo": "notes"}}`,
		"malformed rate": `{"daily_rate": "abc"}`,
	}
	for name, data := range cases {
		_, err := factory.ParseProfile([]byte(data))
		assert.Error(t, err, name)
	}
}

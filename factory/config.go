/*
Package factory provides JSON to Go run-configuration conversion.

PURPOSE:
  Converts JSON run profiles into ledger.Config and ingest.Options. This
  enables rate and column configuration without code changes - a finance
  team can keep a profile per counterparty in JSON, and the factory
  creates the proper Go structs.

JSON SCHEMA:
  {
    "daily_rate": "0.0324",
    "surcharge_rate": "0.18",
    "reference_date": "30-06-2024",
    "due_days": 180,
    "sheet": "Ledger FY24",
    "columns": {
      "date": "date",
      "debit": "debit",
      "credit": "credit",
      "due_date": "180 days",
      "particulars": "particular"
    }
  }

KEY FEATURES:
  - Rates parse as decimal strings or numbers; never floats internally
  - Omitted fields fall back to the policy defaults
  - Column values are case-insensitive substring matchers

USAGE:
  profile, err := factory.ParseProfile(jsonBytes)
  engine := ledger.NewEngine(profile.Engine)
  result, err := ingest.ReadWorkbook(file, profile.Ingest)

SEE ALSO:
  - ledger/engine.go: Config consumed by the engine
  - ingest/ingest.go: Options consumed by the readers
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/receivables-engine/ingest"
	"github.com/warp/receivables-engine/ledger"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// Rate is a decimal rate that accepts both JSON numbers and quoted decimal
// strings, preserving the literal for exact decimal parsing.
type Rate string

func (r *Rate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = Rate(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("rate must be a number or decimal string: %s", data)
	}
	*r = Rate(n)
	return nil
}

// ProfileJSON is the JSON representation of a run profile.
type ProfileJSON struct {
	DailyRate     Rate              `json:"daily_rate,omitempty"`
	SurchargeRate Rate              `json:"surcharge_rate,omitempty"`
	ReferenceDate string            `json:"reference_date,omitempty"`
	DueDays       int               `json:"due_days,omitempty"`
	Sheet         string            `json:"sheet,omitempty"`
	Columns       map[string]string `json:"columns,omitempty"`
}

// Profile is the parsed run configuration.
type Profile struct {
	Engine ledger.Config
	Ingest ingest.Options
}

// =============================================================================
// FACTORY
// =============================================================================

// ParseProfile converts a JSON run profile into engine and ingest
// configuration, applying policy defaults for omitted fields.
func ParseProfile(data []byte) (*Profile, error) {
	var raw ProfileJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	return BuildProfile(raw)
}

// BuildProfile converts an already-decoded profile into configuration.
func BuildProfile(raw ProfileJSON) (*Profile, error) {
	cfg := ledger.DefaultConfig()

	if raw.DailyRate != "" {
		rate, err := decimal.NewFromString(string(raw.DailyRate))
		if err != nil {
			return nil, fmt.Errorf("daily_rate: %w", err)
		}
		if rate.IsNegative() {
			return nil, fmt.Errorf("daily_rate must be non-negative, got %s", rate)
		}
		cfg.DailyRate = rate
	}
	if raw.SurchargeRate != "" {
		rate, err := decimal.NewFromString(string(raw.SurchargeRate))
		if err != nil {
			return nil, fmt.Errorf("surcharge_rate: %w", err)
		}
		if rate.IsNegative() {
			return nil, fmt.Errorf("surcharge_rate must be non-negative, got %s", rate)
		}
		cfg.SurchargeRate = rate
	}
	if raw.ReferenceDate != "" {
		ref, ok := ingest.ParseDate(raw.ReferenceDate)
		if !ok {
			return nil, fmt.Errorf("reference_date: unparseable date %q", raw.ReferenceDate)
		}
		cfg.ReferenceDateOverride = &ref
	}

	opts := ingest.Options{
		Sheet:   raw.Sheet,
		DueDays: raw.DueDays,
	}
	if len(raw.Columns) > 0 {
		mapping := ingest.DefaultMapping()
		for field, substr := range raw.Columns {
			matcher := ingest.Contains(substr)
			switch field {
			case "date":
				mapping.Date = matcher
			case "debit":
				mapping.Debit = matcher
			case "credit":
				mapping.Credit = matcher
			case "due_date":
				mapping.DueDate = matcher
			case "particulars":
				mapping.Particulars = matcher
			default:
				return nil, fmt.Errorf("unknown column field %q", field)
			}
		}
		opts.Mapping = &mapping
	}

	return &Profile{Engine: cfg, Ingest: opts}, nil
}

package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/receivables-engine/ledger"
)

// =============================================================================
// DATE PARSING
// =============================================================================

// serialEpoch is the spreadsheet serial-date epoch (the 1900 date system
// with its leap-year quirk folded in).
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Day-first layouts, tried in order. The trade-credit sheets are day-first
// throughout; ISO is accepted for round-tripped exports.
var dateLayouts = []string{
	"02-01-2006",
	"02/01/2006",
	"2006-01-02",
	"02-01-06",
	"02/01/06",
}

// ParseDate parses a source cell into a calendar date. It accepts the
// day-first string layouts above and bare numbers as spreadsheet serial
// dates. The ok flag is false for anything unparseable; callers decide
// whether to drop or warn.
func ParseDate(s string) (ledger.Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ledger.Date{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return ledger.DateOf(t), true
		}
	}

	// Bare number: spreadsheet serial date.
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return ParseSerialDate(serial), true
	}

	return ledger.Date{}, false
}

// ParseSerialDate converts a spreadsheet serial number to a calendar date.
// Fractional day parts (times of day) are discarded.
func ParseSerialDate(serial float64) ledger.Date {
	return ledger.DateOf(serialEpoch.AddDate(0, 0, int(serial)))
}

// =============================================================================
// AMOUNT PARSING
// =============================================================================

// ParseAmount parses a monetary cell. It strips currency symbols and
// whitespace, normalizes thousands/decimal separators, and returns ok=false
// for anything that still fails to parse. Empty cells parse as zero.
func ParseAmount(s string) (ledger.Money, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ledger.Zero(), true
	}

	cleaned := cleanNumeric(s)
	if cleaned == "" || cleaned == "-" {
		return ledger.Zero(), false
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return ledger.Zero(), false
	}
	return ledger.Money{Value: d}, true
}

// cleanNumeric keeps digits, sign, and separators, then resolves the
// separator convention: when both ',' and '.' appear the commas are
// thousands separators; a lone ',' is treated as the decimal separator.
func cleanNumeric(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',', r == '-':
			b.WriteRune(r)
		case r == '(' || r == ')':
			// Accounting negatives: (1,234.56)
			b.WriteRune(r)
		}
	}
	out := b.String()

	if strings.HasPrefix(out, "(") && strings.HasSuffix(out, ")") {
		out = "-" + strings.Trim(out, "()")
	} else {
		out = strings.ReplaceAll(out, "(", "")
		out = strings.ReplaceAll(out, ")", "")
	}

	switch {
	case strings.Contains(out, ".") && strings.Contains(out, ","):
		out = strings.ReplaceAll(out, ",", "")
	case strings.Contains(out, ","):
		// A lone comma with exactly two trailing digits is a decimal
		// separator; anything else (including Indian-style grouping)
		// is a thousands separator.
		if strings.Count(out, ",") == 1 && len(out)-strings.Index(out, ",") == 3 {
			out = strings.Replace(out, ",", ".", 1)
		} else {
			out = strings.ReplaceAll(out, ",", "")
		}
	}
	return out
}

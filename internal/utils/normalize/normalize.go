// Package normalize coerces raw workbook cell values into validated numeric
// types. Parsing is deliberately lenient: a malformed or missing value becomes
// zero rather than an error, so reloading a hand-edited workbook can never
// leave a numeric column in a non-numeric state.
package normalize

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// timestampLayouts are tried in order when parsing a journal timestamp.
// Rows whose timestamp matches none of them are excluded from time-windowed
// aggregation, never errored.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Money parses raw as a two-decimal monetary amount, falling back to zero on
// any parse failure. Negative values pass through; range rules belong to the
// inventory boundary, not here.
func Money(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return RoundMoney(d)
}

// Quantity parses raw as an integer count, falling back to zero on any parse
// failure. Values stored as floats ("3.0") are truncated toward zero; NaN and
// values outside the int32 range fall back to zero rather than hitting the
// unspecified float-to-int conversion.
func Quantity(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		if math.IsNaN(f) || f < math.MinInt32 || f > math.MaxInt32 {
			return 0
		}
		return int(f)
	}
	return 0
}

// Text trims surrounding whitespace from a cell value.
func Text(raw string) string {
	return strings.TrimSpace(raw)
}

// Timestamp parses a journal timestamp leniently. The second return value is
// false when no known layout matches.
func Timestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// RoundMoney rounds to the two decimal places every monetary column carries.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

package normalize_test

import (
	"testing"
	"time"

	"github.com/DeliciasWera/tienda_ledger_app/internal/utils/normalize"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "8.00", "8"},
		{"integer", "24", "24"},
		{"rounded to two decimals", "3.14159", "3.14"},
		{"whitespace trimmed", "  5.5 ", "5.5"},
		{"empty falls back to zero", "", "0"},
		{"garbage falls back to zero", "abc", "0"},
		{"mixed garbage falls back to zero", "12,50", "0"},
		{"negative passes through", "-7.25", "-7.25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, err := decimal.NewFromString(tt.want)
			assert.NoError(t, err)
			assert.True(t, normalize.Money(tt.raw).Equal(want), "Money(%q)", tt.raw)
		})
	}
}

func TestQuantity(t *testing.T) {
	assert.Equal(t, 3, normalize.Quantity("3"))
	assert.Equal(t, 3, normalize.Quantity("3.0"))
	assert.Equal(t, 3, normalize.Quantity(" 3 "))
	assert.Equal(t, -2, normalize.Quantity("-2"))
	assert.Equal(t, 0, normalize.Quantity(""))
	assert.Equal(t, 0, normalize.Quantity("many"))
	assert.Equal(t, 0, normalize.Quantity("1e20"))
	assert.Equal(t, 0, normalize.Quantity("-1e20"))
	assert.Equal(t, 0, normalize.Quantity("NaN"))
}

func TestTimestamp(t *testing.T) {
	ts, ok := normalize.Timestamp("2024-03-05T14:30:00Z")
	assert.True(t, ok)
	assert.Equal(t, 2024, ts.Year())
	assert.Equal(t, time.March, ts.Month())

	_, ok = normalize.Timestamp("2024-03-05 14:30:00")
	assert.True(t, ok)

	_, ok = normalize.Timestamp("2024-03-05")
	assert.True(t, ok)

	// zoneless ISO timestamps with fractional seconds occur in older workbooks
	_, ok = normalize.Timestamp("2024-03-05T14:30:00.123456")
	assert.True(t, ok)

	_, ok = normalize.Timestamp("05/03/2024")
	assert.False(t, ok)
	_, ok = normalize.Timestamp("")
	assert.False(t, ok)
	_, ok = normalize.Timestamp("not a date")
	assert.False(t, ok)
}

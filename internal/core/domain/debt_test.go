package domain_test

import (
	"testing"

	"github.com/DeliciasWera/tienda_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDebtEntryRecalculate(t *testing.T) {
	entry := domain.DebtEntry{
		Person: "Ana",
		Owed:   decimal.RequireFromString("40.00"),
		Paid:   decimal.RequireFromString("15.00"),
	}
	entry.Recalculate()

	assert.True(t, entry.Balance.Equal(decimal.RequireFromString("25.00")))
	assert.Equal(t, domain.DebtOwes, entry.StatusCode())
	assert.Equal(t, "ADEUDA $25.00", entry.Status)

	entry.Paid = entry.Paid.Add(decimal.RequireFromString("25.00"))
	entry.Recalculate()
	assert.True(t, entry.Balance.IsZero())
	assert.Equal(t, domain.DebtSettled, entry.StatusCode())
	assert.Equal(t, "AL DÍA", entry.Status)

	entry.Paid = entry.Paid.Add(decimal.RequireFromString("10.00"))
	entry.Recalculate()
	assert.Equal(t, domain.DebtCredit, entry.StatusCode())
	assert.Equal(t, "A FAVOR $10.00", entry.Status)
}

func TestPaymentSummaryApplyRouting(t *testing.T) {
	entry := domain.PaymentSummaryEntry{Person: "Ana"}
	ten := decimal.NewFromInt(10)

	entry.Apply(domain.KindCash, ten)
	entry.Apply(domain.KindTransfer, ten)
	entry.Apply(domain.KindOnAccount, ten)
	entry.Apply(domain.KindPayment, ten)

	assert.True(t, entry.TotalCash.Equal(ten))
	assert.True(t, entry.TotalTransfer.Equal(ten))
	assert.True(t, entry.TotalCredit.Equal(ten))
	assert.True(t, entry.TotalPaid.Equal(ten))
}

func TestEventKindIsSaleChannel(t *testing.T) {
	assert.True(t, domain.KindCash.IsSaleChannel())
	assert.True(t, domain.KindOnAccount.IsSaleChannel())
	assert.True(t, domain.KindTransfer.IsSaleChannel())
	assert.False(t, domain.KindPayment.IsSaleChannel())
	assert.False(t, domain.EventKind("Tarjeta").IsSaleChannel())
}

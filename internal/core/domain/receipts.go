package domain

import "github.com/shopspring/decimal"

// SaleReceipt reports the computed outcome of a processed sale back to the
// caller: the appended journal row, the product's remaining stock, and, for
// on-account sales, the person's resulting debt balance.
type SaleReceipt struct {
	Event       SaleEvent
	NewStock    int
	DebtBalance *decimal.Decimal
}

// PaymentReceipt reports the outcome of a processed debt payment.
type PaymentReceipt struct {
	Person string
	Amount decimal.Decimal
	Entry  DebtEntry
}

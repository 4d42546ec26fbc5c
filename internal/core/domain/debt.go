package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DebtStatusCode is the machine-readable classification of a debt balance.
type DebtStatusCode string

const (
	DebtSettled DebtStatusCode = "settled"
	DebtOwes    DebtStatusCode = "owes"
	DebtCredit  DebtStatusCode = "credit"
)

// DebtEntry is one row of the debt ledger, keyed by person. Balance and
// Status are derived from Owed and Paid and must never be trusted from
// storage: callers mutate Owed/Paid and then call Recalculate.
type DebtEntry struct {
	Person  string          `json:"person"`
	Owed    decimal.Decimal `json:"owed"`
	Paid    decimal.Decimal `json:"paid"`
	Balance decimal.Decimal `json:"balance"`
	Status  string          `json:"status"`
}

// Recalculate re-derives Balance and Status from Owed and Paid.
func (d *DebtEntry) Recalculate() {
	d.Balance = d.Owed.Sub(d.Paid)
	d.Status = DebtStatusLabel(d.Balance)
}

// StatusCode classifies the current balance.
func (d *DebtEntry) StatusCode() DebtStatusCode {
	switch {
	case d.Balance.IsZero():
		return DebtSettled
	case d.Balance.IsNegative():
		return DebtCredit
	default:
		return DebtOwes
	}
}

// DebtStatusLabel formats the display label persisted in the workbook's
// Estado column. The strings match what the original application wrote.
func DebtStatusLabel(balance decimal.Decimal) string {
	switch {
	case balance.IsZero():
		return "AL DÍA"
	case balance.IsNegative():
		return fmt.Sprintf("A FAVOR $%s", balance.Neg().StringFixed(2))
	default:
		return fmt.Sprintf("ADEUDA $%s", balance.StringFixed(2))
	}
}

// DebtorsSummary is the debtors view: every ledger entry plus the footer
// totals (sum of positive balances and sum of credit magnitudes).
type DebtorsSummary struct {
	Entries     []DebtEntry     `json:"entries"`
	TotalOwed   decimal.Decimal `json:"totalOwed"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
}

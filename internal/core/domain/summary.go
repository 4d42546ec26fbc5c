package domain

import "github.com/shopspring/decimal"

// PaymentSummaryEntry is one row of the per-person payment summary: running
// totals per channel plus a snapshot of the person's current debt balance.
// One entry exists per person, created lazily on their first event.
type PaymentSummaryEntry struct {
	Person        string          `json:"person"`
	TotalCash     decimal.Decimal `json:"totalCash"`
	TotalTransfer decimal.Decimal `json:"totalTransfer"`
	TotalCredit   decimal.Decimal `json:"totalOnAccount"`
	TotalPaid     decimal.Decimal `json:"totalPaid"`
	DebtBalance   decimal.Decimal `json:"debtBalance"`
	UpdatedAt     string          `json:"updatedAt"`
}

// Apply routes amount to the running total the event kind updates. The
// routing is a fixed kind-to-column table; unknown kinds update nothing.
func (p *PaymentSummaryEntry) Apply(kind EventKind, amount decimal.Decimal) {
	switch kind {
	case KindCash:
		p.TotalCash = p.TotalCash.Add(amount)
	case KindTransfer:
		p.TotalTransfer = p.TotalTransfer.Add(amount)
	case KindOnAccount:
		p.TotalCredit = p.TotalCredit.Add(amount)
	case KindPayment:
		p.TotalPaid = p.TotalPaid.Add(amount)
	}
}

// PaymentSummaryTotals aggregates every summary column across all persons.
type PaymentSummaryTotals struct {
	TotalCash     decimal.Decimal `json:"totalCash"`
	TotalTransfer decimal.Decimal `json:"totalTransfer"`
	TotalCredit   decimal.Decimal `json:"totalOnAccount"`
	TotalPaid     decimal.Decimal `json:"totalPaid"`
	DebtBalance   decimal.Decimal `json:"debtBalance"`
}

// PaymentSummaryReport is the payment-summary view with its footer totals.
type PaymentSummaryReport struct {
	Entries []PaymentSummaryEntry `json:"entries"`
	Totals  PaymentSummaryTotals  `json:"totals"`
}

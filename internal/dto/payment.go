package dto

import (
	"github.com/DeliciasWera/tienda_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentRequest registers a debt repayment from a person.
type PaymentRequest struct {
	Person string          `json:"person" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Note   string          `json:"note"`
}

// PaymentResponse reports the person's debt position after the payment.
type PaymentResponse struct {
	Person      string          `json:"person"`
	Amount      decimal.Decimal `json:"amount"`
	Owed        decimal.Decimal `json:"owed"`
	Paid        decimal.Decimal `json:"paid"`
	Balance     decimal.Decimal `json:"balance"`
	StatusCode  string          `json:"statusCode"`
	StatusLabel string          `json:"statusLabel"`
}

// ToPaymentResponse maps a payment receipt to its API representation.
func ToPaymentResponse(r *domain.PaymentReceipt) PaymentResponse {
	return PaymentResponse{
		Person:      r.Person,
		Amount:      r.Amount,
		Owed:        r.Entry.Owed,
		Paid:        r.Entry.Paid,
		Balance:     r.Entry.Balance,
		StatusCode:  string(r.Entry.StatusCode()),
		StatusLabel: r.Entry.Status,
	}
}

// DebtEntryResponse is the API representation of a debt ledger row.
type DebtEntryResponse struct {
	Person      string          `json:"person"`
	Owed        decimal.Decimal `json:"owed"`
	Paid        decimal.Decimal `json:"paid"`
	Balance     decimal.Decimal `json:"balance"`
	StatusCode  string          `json:"statusCode"`
	StatusLabel string          `json:"statusLabel"`
}

// DebtorsResponse is the debtors view with its footer totals.
type DebtorsResponse struct {
	Debtors     []DebtEntryResponse `json:"debtors"`
	TotalOwed   decimal.Decimal     `json:"totalOwed"`
	TotalCredit decimal.Decimal     `json:"totalCredit"`
}

// ToDebtorsResponse maps the debtors summary to its API representation.
func ToDebtorsResponse(s *domain.DebtorsSummary) DebtorsResponse {
	debtors := make([]DebtEntryResponse, len(s.Entries))
	for i, e := range s.Entries {
		debtors[i] = DebtEntryResponse{
			Person:      e.Person,
			Owed:        e.Owed,
			Paid:        e.Paid,
			Balance:     e.Balance,
			StatusCode:  string(e.StatusCode()),
			StatusLabel: e.Status,
		}
	}
	return DebtorsResponse{
		Debtors:     debtors,
		TotalOwed:   s.TotalOwed,
		TotalCredit: s.TotalCredit,
	}
}

// PaymentSummaryResponse is the per-person payment summary view.
type PaymentSummaryResponse struct {
	Entries []domain.PaymentSummaryEntry `json:"entries"`
	Totals  domain.PaymentSummaryTotals  `json:"totals"`
}

// ToPaymentSummaryResponse maps the summary report to its API representation.
func ToPaymentSummaryResponse(r *domain.PaymentSummaryReport) PaymentSummaryResponse {
	return PaymentSummaryResponse{Entries: r.Entries, Totals: r.Totals}
}

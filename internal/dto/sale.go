package dto

import (
	"github.com/DeliciasWera/tienda_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaleRequest registers a sale of one product on a payment channel. Account
// is only meaningful for transfer sales (the receiving account label).
type SaleRequest struct {
	Code     string `json:"code" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
	Person   string `json:"person"`
	Kind     string `json:"kind" binding:"required,oneof=Efectivo Fiado Transferencia"`
	Note     string `json:"note"`
	Account  string `json:"account"`
}

// SaleResponse reports the outcome of a registered sale. DebtBalance is only
// present for on-account sales.
type SaleResponse struct {
	Timestamp   string           `json:"timestamp"`
	Code        string           `json:"code"`
	Name        string           `json:"name"`
	Quantity    int              `json:"quantity"`
	SalePrice   decimal.Decimal  `json:"salePrice"`
	Total       decimal.Decimal  `json:"total"`
	Profit      decimal.Decimal  `json:"profit"`
	Person      string           `json:"person"`
	Kind        string           `json:"kind"`
	Note        string           `json:"note,omitempty"`
	NewStock    int              `json:"newStock"`
	DebtBalance *decimal.Decimal `json:"debtBalance,omitempty"`
}

// ToSaleResponse maps a sale receipt to its API representation.
func ToSaleResponse(r *domain.SaleReceipt) SaleResponse {
	return SaleResponse{
		Timestamp:   r.Event.Timestamp,
		Code:        r.Event.ProductCode,
		Name:        r.Event.ProductName,
		Quantity:    r.Event.Quantity,
		SalePrice:   r.Event.SalePrice,
		Total:       r.Event.Total,
		Profit:      r.Event.Profit,
		Person:      r.Event.Person,
		Kind:        string(r.Event.Kind),
		Note:        r.Event.Note,
		NewStock:    r.NewStock,
		DebtBalance: r.DebtBalance,
	}
}

// TransferResponse is the API representation of a transfer log row.
type TransferResponse struct {
	Timestamp string          `json:"timestamp"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Total     decimal.Decimal `json:"total"`
	Person    string          `json:"person"`
	Account   string          `json:"account"`
	Note      string          `json:"note,omitempty"`
}

// ListTransfersResponse wraps the transfer log listing.
type ListTransfersResponse struct {
	Transfers []TransferResponse `json:"transfers"`
}

// ToListTransfersResponse maps the transfer log to the listing response.
func ToListTransfersResponse(transfers []domain.TransferRecord) ListTransfersResponse {
	out := make([]TransferResponse, len(transfers))
	for i, tr := range transfers {
		out[i] = TransferResponse{
			Timestamp: tr.Timestamp,
			Code:      tr.ProductCode,
			Name:      tr.ProductName,
			Quantity:  tr.Quantity,
			Price:     tr.Price,
			Total:     tr.Total,
			Person:    tr.Person,
			Account:   tr.Account,
			Note:      tr.Note,
		}
	}
	return ListTransfersResponse{Transfers: out}
}

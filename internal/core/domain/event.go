package domain

import "github.com/shopspring/decimal"

// EventKind is the payment channel of a journal event. The values are the
// strings persisted in the workbook's Tipo column, kept for compatibility
// with workbooks written by the original application.
type EventKind string

const (
	KindCash      EventKind = "Efectivo"
	KindOnAccount EventKind = "Fiado"
	KindTransfer  EventKind = "Transferencia"
	KindPayment   EventKind = "Pago"
)

// IsSaleChannel reports whether k is a channel a sale can be registered on.
// Payment is a debt repayment, not a sale channel.
func (k EventKind) IsSaleChannel() bool {
	switch k {
	case KindCash, KindOnAccount, KindTransfer:
		return true
	}
	return false
}

// SaleEvent is one row of the sales journal: either a sale on some channel or
// a debt repayment (KindPayment). Rows are immutable once appended;
// corrections are made by appending offsetting events, never by editing
// history. Name and prices are snapshots taken at sale time, so later product
// edits never change past rows.
//
// Timestamp is kept as the raw stored string. It is written as RFC 3339 for
// new events, but rows loaded from the workbook may carry anything; rows
// whose timestamp fails lenient parsing are excluded from time-windowed
// aggregation.
type SaleEvent struct {
	Timestamp     string          `json:"timestamp"`
	ProductCode   string          `json:"productCode"`
	ProductName   string          `json:"productName"`
	Quantity      int             `json:"quantity"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	Total         decimal.Decimal `json:"total"`
	Profit        decimal.Decimal `json:"profit"`
	Person        string          `json:"person"`
	Kind          EventKind       `json:"kind"`
	Note          string          `json:"note"`
}

// TransferRecord mirrors a Transfer sale in a separate log, with the account
// label the money arrived on. It exists purely for reconciliation; no
// business rule reads it back.
type TransferRecord struct {
	Timestamp   string          `json:"timestamp"`
	ProductCode string          `json:"productCode"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
	Person      string          `json:"person"`
	Account     string          `json:"account"`
	Note        string          `json:"note"`
}

package domain

import "github.com/shopspring/decimal"

// Product is one row of the inventory table.
// Code is the unique identifier and is immutable once the product is created.
type Product struct {
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	Stock         int             `json:"stock"`
	Category      string          `json:"category"`
}

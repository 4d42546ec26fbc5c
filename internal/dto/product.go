package dto

import (
	"github.com/DeliciasWera/tienda_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AddProductRequest is the payload for creating an inventory row. Prices and
// stock default to zero when omitted, matching the original entry form.
type AddProductRequest struct {
	Code          string          `json:"code" binding:"required"`
	Name          string          `json:"name" binding:"required"`
	PurchasePrice decimal.Decimal `json:"purchasePrice" binding:"nonneg"`
	SalePrice     decimal.Decimal `json:"salePrice" binding:"nonneg"`
	Stock         int             `json:"stock"`
	Category      string          `json:"category"`
}

// EditProductRequest replaces every mutable field of a product. The code is
// immutable and travels in the URL, never in the body.
type EditProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	PurchasePrice decimal.Decimal `json:"purchasePrice" binding:"nonneg"`
	SalePrice     decimal.Decimal `json:"salePrice" binding:"nonneg"`
	Stock         int             `json:"stock"`
	Category      string          `json:"category"`
}

// RestockRequest adds quantity units to a product's stock.
type RestockRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// ProductResponse is the API representation of an inventory row.
type ProductResponse struct {
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	Stock         int             `json:"stock"`
	Category      string          `json:"category"`
}

// ListProductsResponse wraps a product listing.
type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

// ToProductResponse maps a domain product to its API representation.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		Code:          p.Code,
		Name:          p.Name,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		Stock:         p.Stock,
		Category:      p.Category,
	}
}

// ToListProductsResponse maps a product slice to the listing response.
func ToListProductsResponse(products []domain.Product) ListProductsResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return ListProductsResponse{Products: out}
}

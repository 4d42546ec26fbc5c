package dto

import (
	"github.com/DeliciasWera/tienda_ledger_app/internal/core/domain"
)

// MonthlyRollupResponse wraps the monthly rollup table.
type MonthlyRollupResponse struct {
	Months []domain.MonthlyRollupEntry `json:"months"`
}

// ProductBreakdownResponse wraps the per-product breakdown for a window.
type ProductBreakdownResponse struct {
	Window   domain.ReportWindow      `json:"window"`
	Products []domain.ProductSalesRow `json:"products"`
}

// ExportRequest names the directory the workbook is exported into.
type ExportRequest struct {
	Dir string `json:"dir" binding:"required"`
}

// FileOpResponse reports the destination of a backup or export.
type FileOpResponse struct {
	Path string `json:"path"`
}

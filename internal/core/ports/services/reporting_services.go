package services

import (
	"context"

	"github.com/DeliciasWera/tienda_ledger_app/internal/core/domain"
)

// ReportingSvcFacade is the read-side aggregation surface. It never mutates
// state and always excludes Payment events from its figures.
type ReportingSvcFacade interface {
	WindowTotals(ctx context.Context, window domain.ReportWindow) (*domain.WindowTotals, error)
	Overview(ctx context.Context) (*domain.ReportOverview, error)
	ProductBreakdown(ctx context.Context, window domain.ReportWindow) ([]domain.ProductSalesRow, error)
}

package services

import (
	"context"

	"github.com/DeliciasWera/tienda_ledger_app/internal/core/domain"
	"github.com/DeliciasWera/tienda_ledger_app/internal/dto"
)

// LedgerSvcFacade is the full surface of the ledger engine: every business
// event the presentation layer can submit, plus the table views it reads.
// Every mutating call is synchronous and either completes fully (all tables
// updated and persisted) or fails with no visible side effect.
type LedgerSvcFacade interface {
	// Inventory table operations.
	AddProduct(ctx context.Context, req dto.AddProductRequest) (*domain.Product, error)
	EditProduct(ctx context.Context, code string, req dto.EditProductRequest) (*domain.Product, error)
	RestockProduct(ctx context.Context, code string, req dto.RestockRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, code string) error
	GetProduct(ctx context.Context, code string) (*domain.Product, error)
	ListProducts(ctx context.Context, query string) ([]domain.Product, error)

	// Journal events.
	RecordSale(ctx context.Context, req dto.SaleRequest) (*domain.SaleReceipt, error)
	RecordPayment(ctx context.Context, req dto.PaymentRequest) (*domain.PaymentReceipt, error)

	// Ledger views.
	ListDebtors(ctx context.Context) (*domain.DebtorsSummary, error)
	PaymentSummary(ctx context.Context) (*domain.PaymentSummaryReport, error)
	MonthlyRollup(ctx context.Context) ([]domain.MonthlyRollupEntry, error)
	ListTransfers(ctx context.Context) ([]domain.TransferRecord, error)

	// Store maintenance.
	Reload(ctx context.Context) error
	Backup(ctx context.Context) (string, error)
	Export(ctx context.Context, destDir string) (string, error)
}

// SalesJournalSource provides a read-only snapshot of the sales journal for
// read-side aggregation.
type SalesJournalSource interface {
	SalesSnapshot(ctx context.Context) ([]domain.SaleEvent, error)
}

package repositories

import (
	"context"

	"github.com/DeliciasWera/tienda_ledger_app/internal/core/domain"
)

// WorkbookRepository persists the full table set as one unit. There is no
// per-table write: either every table is written or none are.
type WorkbookRepository interface {
	// LoadAll reads every table from the workbook. A missing, corrupt or
	// incomplete workbook yields empty canonical tables for the affected
	// sheets, never an error; all numeric columns are renormalized.
	LoadAll(ctx context.Context) (*domain.TableSet, error)

	// SaveAll writes every table atomically over the previous workbook.
	SaveAll(ctx context.Context, tables *domain.TableSet) error

	// Backup verifies the persisted workbook can be fully read back, then
	// copies it into a timestamped destination. Returns the copied file path.
	Backup(ctx context.Context) (string, error)

	// ExportTo copies the persisted workbook into destDir. Returns the
	// copied file path.
	ExportTo(ctx context.Context, destDir string) (string, error)
}

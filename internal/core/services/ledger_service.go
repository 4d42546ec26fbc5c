package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/DeliciasWera/tienda_ledger_app/internal/apperrors"
	"github.com/DeliciasWera/tienda_ledger_app/internal/core/domain"
	portsrepo "github.com/DeliciasWera/tienda_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/DeliciasWera/tienda_ledger_app/internal/core/ports/services"
	"github.com/DeliciasWera/tienda_ledger_app/internal/middleware"
	"github.com/DeliciasWera/tienda_ledger_app/internal/utils/normalize"
)

// LedgerService is the bookkeeping engine. It owns the single in-memory
// TableSet and serializes every operation behind one mutex, so each business
// event observes and produces a consistent cross-table state. Mutating
// pipelines snapshot the tables first and restore the snapshot when the
// workbook write fails, leaving no visible side effect.
type LedgerService struct {
	repo   portsrepo.WorkbookRepository
	mu     sync.Mutex
	tables *domain.TableSet
}

var _ portssvc.LedgerSvcFacade = (*LedgerService)(nil)
var _ portssvc.SalesJournalSource = (*LedgerService)(nil)

// NewLedgerService loads the workbook and returns the ready engine.
func NewLedgerService(ctx context.Context, repo portsrepo.WorkbookRepository) (*LedgerService, error) {
	s := &LedgerService{repo: repo, tables: domain.NewTableSet()}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload discards the in-memory tables and reloads them from the workbook.
// Derived columns are recomputed from their sources: debt balances and status
// labels from Owed/Paid, the monthly rollup from the journal.
func (s *LedgerService) Reload(ctx context.Context) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	tables, err := s.repo.LoadAll(ctx)
	if err != nil {
		logger.Error("failed to load workbook", "error", err)
		return fmt.Errorf("%w: loading workbook: %v", apperrors.ErrPersistence, err)
	}
	for i := range tables.Debts {
		tables.Debts[i].Recalculate()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables = tables
	s.rebuildMonthlyRollupLocked(time.Now())

	logger.Info("workbook loaded",
		"products", len(tables.Inventory),
		"events", len(tables.Sales),
		"debtors", len(tables.Debts))
	return nil
}

// Close persists the tables one final time. Called on shutdown.
func (s *LedgerService) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.SaveAll(ctx, s.tables); err != nil {
		return fmt.Errorf("%w: final save: %v", apperrors.ErrPersistence, err)
	}
	return nil
}

// persistLocked writes the tables and restores snapshot on failure. The
// caller must hold the mutex and have cloned snapshot before mutating.
func (s *LedgerService) persistLocked(ctx context.Context, snapshot *domain.TableSet) error {
	if err := s.repo.SaveAll(ctx, s.tables); err != nil {
		s.tables = snapshot
		middleware.GetLoggerFromCtx(ctx).Error("workbook save failed, state restored", "error", err)
		return fmt.Errorf("%w: saving workbook: %v", apperrors.ErrPersistence, err)
	}
	return nil
}

// rebuildMonthlyRollupLocked rebuilds the rollup table from the journal.
// Payment events are cash flow, not sales, and never contribute. Rows with
// unparseable timestamps carry no month and are skipped.
func (s *LedgerService) rebuildMonthlyRollupLocked(now time.Time) {
	byMonth := map[string]int{}
	rollup := []domain.MonthlyRollupEntry{}
	updatedAt := now.Format(time.RFC3339)

	for _, ev := range s.tables.Sales {
		if ev.Kind == domain.KindPayment {
			continue
		}
		ts, ok := normalize.Timestamp(ev.Timestamp)
		if !ok {
			continue
		}
		month := ts.Format("2006-01")
		i, seen := byMonth[month]
		if !seen {
			i = len(rollup)
			byMonth[month] = i
			rollup = append(rollup, domain.MonthlyRollupEntry{Month: month, UpdatedAt: updatedAt})
		}
		rollup[i].TotalSales = rollup[i].TotalSales.Add(ev.Total)
		rollup[i].TotalProfit = rollup[i].TotalProfit.Add(ev.Profit)
	}

	sort.Slice(rollup, func(i, j int) bool { return rollup[i].Month < rollup[j].Month })
	s.tables.MonthlyRollup = rollup
}

// findDebtLocked returns the index of person's debt entry, or -1.
func (s *LedgerService) findDebtLocked(person string) int {
	for i := range s.tables.Debts {
		if s.tables.Debts[i].Person == person {
			return i
		}
	}
	return -1
}

// ListDebtors returns every debt ledger entry with the footer totals:
// the sum of positive balances and the sum of credit magnitudes.
func (s *LedgerService) ListDebtors(ctx context.Context) (*domain.DebtorsSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := &domain.DebtorsSummary{Entries: make([]domain.DebtEntry, len(s.tables.Debts))}
	copy(out.Entries, s.tables.Debts)
	for i := range out.Entries {
		b := out.Entries[i].Balance
		switch {
		case b.IsPositive():
			out.TotalOwed = out.TotalOwed.Add(b)
		case b.IsNegative():
			out.TotalCredit = out.TotalCredit.Add(b.Neg())
		}
	}
	return out, nil
}

// PaymentSummary returns every payment summary row with column totals.
func (s *LedgerService) PaymentSummary(ctx context.Context) (*domain.PaymentSummaryReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := &domain.PaymentSummaryReport{Entries: make([]domain.PaymentSummaryEntry, len(s.tables.PaymentSummary))}
	copy(out.Entries, s.tables.PaymentSummary)
	for _, e := range out.Entries {
		out.Totals.TotalCash = out.Totals.TotalCash.Add(e.TotalCash)
		out.Totals.TotalTransfer = out.Totals.TotalTransfer.Add(e.TotalTransfer)
		out.Totals.TotalCredit = out.Totals.TotalCredit.Add(e.TotalCredit)
		out.Totals.TotalPaid = out.Totals.TotalPaid.Add(e.TotalPaid)
		out.Totals.DebtBalance = out.Totals.DebtBalance.Add(e.DebtBalance)
	}
	return out, nil
}

// MonthlyRollup rebuilds and returns the monthly rollup. The table is a
// cache over the journal, so it is always recomputed before being served.
func (s *LedgerService) MonthlyRollup(ctx context.Context) ([]domain.MonthlyRollupEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rebuildMonthlyRollupLocked(time.Now())
	out := make([]domain.MonthlyRollupEntry, len(s.tables.MonthlyRollup))
	copy(out, s.tables.MonthlyRollup)
	return out, nil
}

// ListTransfers returns the transfer log in journal order.
func (s *LedgerService) ListTransfers(ctx context.Context) ([]domain.TransferRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.TransferRecord, len(s.tables.Transfers))
	copy(out, s.tables.Transfers)
	return out, nil
}

// SalesSnapshot returns a copy of the sales journal for read-side
// aggregation.
func (s *LedgerService) SalesSnapshot(ctx context.Context) ([]domain.SaleEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.SaleEvent, len(s.tables.Sales))
	copy(out, s.tables.Sales)
	return out, nil
}

// Backup persists the current tables, then asks the repository to verify and
// copy the workbook into a timestamped backup directory.
func (s *LedgerService) Backup(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.SaveAll(ctx, s.tables); err != nil {
		return "", fmt.Errorf("%w: saving workbook before backup: %v", apperrors.ErrPersistence, err)
	}
	path, err := s.repo.Backup(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: backup: %v", apperrors.ErrPersistence, err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("workbook backed up", "path", path)
	return path, nil
}

// Export persists the current tables, then copies the workbook into destDir.
func (s *LedgerService) Export(ctx context.Context, destDir string) (string, error) {
	if normalize.Text(destDir) == "" {
		return "", fmt.Errorf("%w: export directory is required", apperrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rebuildMonthlyRollupLocked(time.Now())
	if err := s.repo.SaveAll(ctx, s.tables); err != nil {
		return "", fmt.Errorf("%w: saving workbook before export: %v", apperrors.ErrPersistence, err)
	}
	path, err := s.repo.ExportTo(ctx, destDir)
	if err != nil {
		return "", fmt.Errorf("%w: export: %v", apperrors.ErrPersistence, err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("workbook exported", "path", path)
	return path, nil
}

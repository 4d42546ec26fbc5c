package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/DeliciasWera/tienda_ledger_app/internal/apperrors"
	"github.com/DeliciasWera/tienda_ledger_app/internal/core/domain"
	portssvc "github.com/DeliciasWera/tienda_ledger_app/internal/core/ports/services"
	"github.com/DeliciasWera/tienda_ledger_app/internal/utils/normalize"
)

// ReportingService aggregates the sales journal over calendar windows. It
// reads journal snapshots and never mutates ledger state. Payment events are
// excluded everywhere: they move money, not merchandise. Rows whose
// timestamp fails lenient parsing are excluded from every window.
type ReportingService struct {
	journal portssvc.SalesJournalSource
}

var _ portssvc.ReportingSvcFacade = (*ReportingService)(nil)

// NewReportingService creates a new ReportingService over journal.
func NewReportingService(journal portssvc.SalesJournalSource) *ReportingService {
	return &ReportingService{journal: journal}
}

// WindowTotals sums units, sales and profit over the given window.
func (s *ReportingService) WindowTotals(ctx context.Context, window domain.ReportWindow) (*domain.WindowTotals, error) {
	if !window.Valid() {
		return nil, fmt.Errorf("%w: unknown report window %q", apperrors.ErrValidation, window)
	}
	events, err := s.journal.SalesSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	out := &domain.WindowTotals{Window: window}
	start, end, bounded := windowBounds(time.Now(), window)
	for _, ev := range events {
		if !inWindow(ev, start, end, bounded) {
			continue
		}
		out.Units += ev.Quantity
		out.Sales = out.Sales.Add(ev.Total)
		out.Profit = out.Profit.Add(ev.Profit)
	}
	return out, nil
}

// Overview returns the today, week and month totals in one call.
func (s *ReportingService) Overview(ctx context.Context) (*domain.ReportOverview, error) {
	events, err := s.journal.SalesSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := &domain.ReportOverview{
		Today: domain.WindowTotals{Window: domain.WindowToday},
		Week:  domain.WindowTotals{Window: domain.WindowWeek},
		Month: domain.WindowTotals{Window: domain.WindowMonth},
	}
	for _, w := range []*domain.WindowTotals{&out.Today, &out.Week, &out.Month} {
		start, end, bounded := windowBounds(now, w.Window)
		for _, ev := range events {
			if !inWindow(ev, start, end, bounded) {
				continue
			}
			w.Units += ev.Quantity
			w.Sales = w.Sales.Add(ev.Total)
			w.Profit = w.Profit.Add(ev.Profit)
		}
	}
	return out, nil
}

// ProductBreakdown groups the window's sales by product, ordered by
// descending profit. Rows are keyed by code and name together, so a product
// renamed mid-history shows one row per name it sold under.
func (s *ReportingService) ProductBreakdown(ctx context.Context, window domain.ReportWindow) ([]domain.ProductSalesRow, error) {
	if !window.Valid() {
		return nil, fmt.Errorf("%w: unknown report window %q", apperrors.ErrValidation, window)
	}
	events, err := s.journal.SalesSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	start, end, bounded := windowBounds(time.Now(), window)
	byProduct := map[[2]string]int{}
	rows := []domain.ProductSalesRow{}
	for _, ev := range events {
		if !inWindow(ev, start, end, bounded) {
			continue
		}
		key := [2]string{ev.ProductCode, ev.ProductName}
		i, seen := byProduct[key]
		if !seen {
			i = len(rows)
			byProduct[key] = i
			rows = append(rows, domain.ProductSalesRow{Code: ev.ProductCode, Name: ev.ProductName})
		}
		rows[i].Units += ev.Quantity
		rows[i].Sales = rows[i].Sales.Add(ev.Total)
		rows[i].Profit = rows[i].Profit.Add(ev.Profit)
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Profit.GreaterThan(rows[j].Profit) })
	return rows, nil
}

// inWindow reports whether a journal event contributes to a window. Rows
// whose timestamp fails lenient parsing cannot be placed in time and are
// excluded from every window, the all-time one included.
func inWindow(ev domain.SaleEvent, start, end time.Time, bounded bool) bool {
	if ev.Kind == domain.KindPayment {
		return false
	}
	ts, ok := normalize.Timestamp(ev.Timestamp)
	if !ok {
		return false
	}
	if !bounded {
		return true
	}
	return !ts.Before(start) && ts.Before(end)
}

// windowBounds resolves a window to its [start, end) bounds relative to now.
// The week window runs Monday through today. The all-time window is
// unbounded (bounded false).
func windowBounds(now time.Time, window domain.ReportWindow) (start, end time.Time, bounded bool) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch window {
	case domain.WindowToday:
		return midnight, midnight.AddDate(0, 0, 1), true
	case domain.WindowWeek:
		daysSinceMonday := (int(now.Weekday()) + 6) % 7
		return midnight.AddDate(0, 0, -daysSinceMonday), midnight.AddDate(0, 0, 1), true
	case domain.WindowMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return first, first.AddDate(0, 1, 0), true
	default:
		return time.Time{}, time.Time{}, false
	}
}

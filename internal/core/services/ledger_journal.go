package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DeliciasWera/tienda_ledger_app/internal/apperrors"
	"github.com/DeliciasWera/tienda_ledger_app/internal/core/domain"
	"github.com/DeliciasWera/tienda_ledger_app/internal/dto"
	"github.com/DeliciasWera/tienda_ledger_app/internal/middleware"
	"github.com/DeliciasWera/tienda_ledger_app/internal/utils/normalize"
)

// defaultPerson is recorded when a sale names nobody.
const defaultPerson = "Cliente"

// paymentRowName is the product-name placeholder a debt repayment carries in
// the journal.
const paymentRowName = "Pago de deuda"

// RecordSale processes one sale end to end: stock check and decrement,
// journal append, transfer log, debt ledger and payment summary updates,
// rollup rebuild, then a single workbook write. On any failure the in-memory
// tables are left exactly as they were.
func (s *LedgerService) RecordSale(ctx context.Context, req dto.SaleRequest) (*domain.SaleReceipt, error) {
	kind := domain.EventKind(normalize.Text(req.Kind))
	if !kind.IsSaleChannel() {
		return nil, fmt.Errorf("%w: unknown sale kind %q", apperrors.ErrValidation, req.Kind)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: sale quantity must be positive, got %d", apperrors.ErrInvalidQuantity, req.Quantity)
	}
	person := normalize.Text(req.Person)
	if person == "" {
		person = defaultPerson
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	code := normalize.Text(req.Code)
	i := s.findProductLocked(code)
	if i < 0 {
		return nil, fmt.Errorf("%w: product code %q", apperrors.ErrNotFound, code)
	}
	p := &s.tables.Inventory[i]
	if p.Stock < req.Quantity {
		return nil, fmt.Errorf("%w: product %q has stock %d, requested %d",
			apperrors.ErrInsufficientStock, code, p.Stock, req.Quantity)
	}

	snapshot := s.tables.Clone()
	now := time.Now()
	ts := now.Format(time.RFC3339)
	qty := decimal.NewFromInt(int64(req.Quantity))
	total := normalize.RoundMoney(p.SalePrice.Mul(qty))
	profit := normalize.RoundMoney(p.SalePrice.Sub(p.PurchasePrice).Mul(qty))

	p.Stock -= req.Quantity
	event := domain.SaleEvent{
		Timestamp:     ts,
		ProductCode:   p.Code,
		ProductName:   p.Name,
		Quantity:      req.Quantity,
		SalePrice:     p.SalePrice,
		PurchasePrice: p.PurchasePrice,
		Total:         total,
		Profit:        profit,
		Person:        person,
		Kind:          kind,
		Note:          normalize.Text(req.Note),
	}
	s.tables.Sales = append(s.tables.Sales, event)

	if kind == domain.KindTransfer {
		s.tables.Transfers = append(s.tables.Transfers, domain.TransferRecord{
			Timestamp:   ts,
			ProductCode: event.ProductCode,
			ProductName: event.ProductName,
			Quantity:    event.Quantity,
			Price:       event.SalePrice,
			Total:       event.Total,
			Person:      person,
			Account:     normalize.Text(req.Account),
			Note:        event.Note,
		})
	}

	var debtBalance *decimal.Decimal
	if kind == domain.KindOnAccount {
		d := s.findDebtLocked(person)
		if d < 0 {
			d = len(s.tables.Debts)
			s.tables.Debts = append(s.tables.Debts, domain.DebtEntry{Person: person})
		}
		s.tables.Debts[d].Owed = s.tables.Debts[d].Owed.Add(total)
		s.tables.Debts[d].Recalculate()
		b := s.tables.Debts[d].Balance
		debtBalance = &b
	}

	s.applySummaryLocked(person, kind, total, ts)
	s.rebuildMonthlyRollupLocked(now)
	if err := s.persistLocked(ctx, snapshot); err != nil {
		return nil, err
	}

	newStock := s.tables.Inventory[i].Stock
	middleware.GetLoggerFromCtx(ctx).Info("sale recorded",
		"code", event.ProductCode,
		"quantity", event.Quantity,
		"kind", string(kind),
		"total", total.String(),
		"stock", newStock)
	return &domain.SaleReceipt{Event: event, NewStock: newStock, DebtBalance: debtBalance}, nil
}

// RecordPayment processes a debt repayment: the payment is credited against
// the person's debt entry, journaled as a Pago row, and reflected in the
// payment summary. Payments never touch inventory or the monthly rollup.
// A payment from a person with no debt entry creates one, leaving the person
// in credit.
func (s *LedgerService) RecordPayment(ctx context.Context, req dto.PaymentRequest) (*domain.PaymentReceipt, error) {
	person := normalize.Text(req.Person)
	if person == "" {
		return nil, fmt.Errorf("%w: person is required", apperrors.ErrValidation)
	}
	amount := normalize.RoundMoney(req.Amount)
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive, got %s", apperrors.ErrInvalidPayment, amount.String())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.tables.Clone()
	now := time.Now()
	ts := now.Format(time.RFC3339)

	d := s.findDebtLocked(person)
	if d < 0 {
		d = len(s.tables.Debts)
		s.tables.Debts = append(s.tables.Debts, domain.DebtEntry{Person: person})
	}
	s.tables.Debts[d].Paid = s.tables.Debts[d].Paid.Add(amount)
	s.tables.Debts[d].Recalculate()

	s.tables.Sales = append(s.tables.Sales, domain.SaleEvent{
		Timestamp:   ts,
		ProductName: paymentRowName,
		Quantity:    1,
		SalePrice:   amount,
		Total:       amount,
		Person:      person,
		Kind:        domain.KindPayment,
		Note:        normalize.Text(req.Note),
	})

	s.applySummaryLocked(person, domain.KindPayment, amount, ts)
	// no-op on totals, payments are excluded from the rollup
	s.rebuildMonthlyRollupLocked(now)
	if err := s.persistLocked(ctx, snapshot); err != nil {
		return nil, err
	}

	entry := s.tables.Debts[d]
	middleware.GetLoggerFromCtx(ctx).Info("payment recorded",
		"person", person,
		"amount", amount.String(),
		"balance", entry.Balance.String())
	return &domain.PaymentReceipt{Person: person, Amount: amount, Entry: entry}, nil
}

// applySummaryLocked routes amount into person's payment summary row,
// creating the row on the person's first event, and refreshes the row's
// debt balance snapshot from the debt ledger. The caller must hold the
// mutex.
func (s *LedgerService) applySummaryLocked(person string, kind domain.EventKind, amount decimal.Decimal, ts string) {
	idx := -1
	for i := range s.tables.PaymentSummary {
		if s.tables.PaymentSummary[i].Person == person {
			idx = i
			break
		}
	}
	if idx < 0 {
		idx = len(s.tables.PaymentSummary)
		s.tables.PaymentSummary = append(s.tables.PaymentSummary, domain.PaymentSummaryEntry{Person: person})
	}

	entry := &s.tables.PaymentSummary[idx]
	entry.Apply(kind, amount)
	entry.DebtBalance = decimal.Zero
	if d := s.findDebtLocked(person); d >= 0 {
		entry.DebtBalance = s.tables.Debts[d].Balance
	}
	entry.UpdatedAt = ts
}

package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/DeliciasWera/tienda_ledger_app/internal/apperrors"
	"github.com/DeliciasWera/tienda_ledger_app/internal/core/domain"
	"github.com/DeliciasWera/tienda_ledger_app/internal/dto"
	"github.com/DeliciasWera/tienda_ledger_app/internal/middleware"
	"github.com/DeliciasWera/tienda_ledger_app/internal/utils/normalize"
)

// AddProduct creates an inventory row. The code must be unique; prices are
// rounded to two decimals and must not be negative.
func (s *LedgerService) AddProduct(ctx context.Context, req dto.AddProductRequest) (*domain.Product, error) {
	p := domain.Product{
		Code:          normalize.Text(req.Code),
		Name:          normalize.Text(req.Name),
		PurchasePrice: normalize.RoundMoney(req.PurchasePrice),
		SalePrice:     normalize.RoundMoney(req.SalePrice),
		Stock:         req.Stock,
		Category:      normalize.Text(req.Category),
	}
	if err := validateProduct(&p); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findProductLocked(p.Code) >= 0 {
		return nil, fmt.Errorf("%w: product code %q already exists", apperrors.ErrDuplicate, p.Code)
	}

	snapshot := s.tables.Clone()
	s.tables.Inventory = append(s.tables.Inventory, p)
	s.rebuildMonthlyRollupLocked(time.Now())
	if err := s.persistLocked(ctx, snapshot); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("product added", "code", p.Code, "name", p.Name)
	return &p, nil
}

// EditProduct replaces every mutable field of an existing product. The code
// is immutable; past journal rows keep their snapshots either way.
func (s *LedgerService) EditProduct(ctx context.Context, code string, req dto.EditProductRequest) (*domain.Product, error) {
	code = normalize.Text(code)
	p := domain.Product{
		Code:          code,
		Name:          normalize.Text(req.Name),
		PurchasePrice: normalize.RoundMoney(req.PurchasePrice),
		SalePrice:     normalize.RoundMoney(req.SalePrice),
		Stock:         req.Stock,
		Category:      normalize.Text(req.Category),
	}
	if err := validateProduct(&p); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findProductLocked(code)
	if i < 0 {
		return nil, fmt.Errorf("%w: product code %q", apperrors.ErrNotFound, code)
	}

	snapshot := s.tables.Clone()
	s.tables.Inventory[i] = p
	s.rebuildMonthlyRollupLocked(time.Now())
	if err := s.persistLocked(ctx, snapshot); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("product edited", "code", code)
	return &p, nil
}

// RestockProduct adds a positive quantity to a product's stock.
func (s *LedgerService) RestockProduct(ctx context.Context, code string, req dto.RestockRequest) (*domain.Product, error) {
	code = normalize.Text(code)
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: restock quantity must be positive, got %d", apperrors.ErrInvalidQuantity, req.Quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findProductLocked(code)
	if i < 0 {
		return nil, fmt.Errorf("%w: product code %q", apperrors.ErrNotFound, code)
	}

	snapshot := s.tables.Clone()
	s.tables.Inventory[i].Stock += req.Quantity
	s.rebuildMonthlyRollupLocked(time.Now())
	if err := s.persistLocked(ctx, snapshot); err != nil {
		return nil, err
	}

	p := s.tables.Inventory[i]
	middleware.GetLoggerFromCtx(ctx).Info("product restocked", "code", code, "quantity", req.Quantity, "stock", p.Stock)
	return &p, nil
}

// DeleteProduct removes an inventory row. Journal rows referencing the code
// are history and stay untouched.
func (s *LedgerService) DeleteProduct(ctx context.Context, code string) error {
	code = normalize.Text(code)

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findProductLocked(code)
	if i < 0 {
		return fmt.Errorf("%w: product code %q", apperrors.ErrNotFound, code)
	}

	snapshot := s.tables.Clone()
	s.tables.Inventory = append(s.tables.Inventory[:i], s.tables.Inventory[i+1:]...)
	s.rebuildMonthlyRollupLocked(time.Now())
	if err := s.persistLocked(ctx, snapshot); err != nil {
		return err
	}

	middleware.GetLoggerFromCtx(ctx).Info("product deleted", "code", code)
	return nil
}

// GetProduct returns the product with the given code.
func (s *LedgerService) GetProduct(ctx context.Context, code string) (*domain.Product, error) {
	code = normalize.Text(code)

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findProductLocked(code)
	if i < 0 {
		return nil, fmt.Errorf("%w: product code %q", apperrors.ErrNotFound, code)
	}
	p := s.tables.Inventory[i]
	return &p, nil
}

// ListProducts returns inventory rows whose code or name contains query
// (case-insensitive), ordered by ascending stock so items running low are
// listed first. An empty query returns everything.
func (s *LedgerService) ListProducts(ctx context.Context, query string) ([]domain.Product, error) {
	query = strings.ToLower(normalize.Text(query))

	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.Product{}
	for _, p := range s.tables.Inventory {
		if query == "" ||
			strings.Contains(strings.ToLower(p.Code), query) ||
			strings.Contains(strings.ToLower(p.Name), query) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Stock < out[j].Stock })
	return out, nil
}

// findProductLocked returns the index of the product with code, or -1.
// The caller must hold the mutex.
func (s *LedgerService) findProductLocked(code string) int {
	for i := range s.tables.Inventory {
		if s.tables.Inventory[i].Code == code {
			return i
		}
	}
	return -1
}

func validateProduct(p *domain.Product) error {
	if p.Code == "" || p.Name == "" {
		return fmt.Errorf("%w: product code and name are required", apperrors.ErrValidation)
	}
	if p.PurchasePrice.IsNegative() || p.SalePrice.IsNegative() {
		return fmt.Errorf("%w: prices must not be negative", apperrors.ErrValidation)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", apperrors.ErrValidation)
	}
	return nil
}

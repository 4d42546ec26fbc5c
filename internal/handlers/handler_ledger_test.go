package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/DeliciasWera/tienda_ledger_app/internal/apperrors"
	"github.com/DeliciasWera/tienda_ledger_app/internal/core/domain"
	portssvc "github.com/DeliciasWera/tienda_ledger_app/internal/core/ports/services"
	"github.com/DeliciasWera/tienda_ledger_app/internal/dto"
	"github.com/DeliciasWera/tienda_ledger_app/internal/handlers"
	"github.com/DeliciasWera/tienda_ledger_app/internal/platform/config"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) AddProduct(ctx context.Context, req dto.AddProductRequest) (*domain.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockLedgerService) EditProduct(ctx context.Context, code string, req dto.EditProductRequest) (*domain.Product, error) {
	args := m.Called(ctx, code, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockLedgerService) RestockProduct(ctx context.Context, code string, req dto.RestockRequest) (*domain.Product, error) {
	args := m.Called(ctx, code, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockLedgerService) DeleteProduct(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}
func (m *MockLedgerService) GetProduct(ctx context.Context, code string) (*domain.Product, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockLedgerService) ListProducts(ctx context.Context, query string) ([]domain.Product, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}
func (m *MockLedgerService) RecordSale(ctx context.Context, req dto.SaleRequest) (*domain.SaleReceipt, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SaleReceipt), args.Error(1)
}
func (m *MockLedgerService) RecordPayment(ctx context.Context, req dto.PaymentRequest) (*domain.PaymentReceipt, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentReceipt), args.Error(1)
}
func (m *MockLedgerService) ListDebtors(ctx context.Context) (*domain.DebtorsSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebtorsSummary), args.Error(1)
}
func (m *MockLedgerService) PaymentSummary(ctx context.Context) (*domain.PaymentSummaryReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentSummaryReport), args.Error(1)
}
func (m *MockLedgerService) MonthlyRollup(ctx context.Context) ([]domain.MonthlyRollupEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyRollupEntry), args.Error(1)
}
func (m *MockLedgerService) ListTransfers(ctx context.Context) ([]domain.TransferRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransferRecord), args.Error(1)
}
func (m *MockLedgerService) Reload(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockLedgerService) Backup(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
func (m *MockLedgerService) Export(ctx context.Context, destDir string) (string, error) {
	args := m.Called(ctx, destDir)
	return args.String(0), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) WindowTotals(ctx context.Context, window domain.ReportWindow) (*domain.WindowTotals, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WindowTotals), args.Error(1)
}
func (m *MockReportingService) Overview(ctx context.Context) (*domain.ReportOverview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportOverview), args.Error(1)
}
func (m *MockReportingService) ProductBreakdown(ctx context.Context, window domain.ReportWindow) ([]domain.ProductSalesRow, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductSalesRow), args.Error(1)
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockLedger    *MockLedgerService
	mockReporting *MockReportingService
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	dto.RegisterValidations()
	suite.mockLedger = new(MockLedgerService)
	suite.mockReporting = new(MockReportingService)

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &config.Config{}, &portssvc.ServiceContainer{
		Ledger:    suite.mockLedger,
		Reporting: suite.mockReporting,
	})
}

func (suite *HandlerTestSuite) performJSON(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.performJSON(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestAddProduct_Created() {
	product := &domain.Product{
		Code:      "COC600",
		Name:      "Coca Cola 600ml",
		SalePrice: decimal.RequireFromString("18.00"),
		Stock:     24,
	}
	suite.mockLedger.On("AddProduct", mock.Anything, mock.AnythingOfType("dto.AddProductRequest")).
		Return(product, nil).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/products", gin.H{
		"code": "COC600", "name": "Coca Cola 600ml", "salePrice": "18.00", "stock": 24,
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ProductResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("COC600", resp.Code)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestAddProduct_DuplicateConflict() {
	suite.mockLedger.On("AddProduct", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: product code %q already exists", apperrors.ErrDuplicate, "COC600")).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/products", gin.H{
		"code": "COC600", "name": "Coca Cola 600ml",
	})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestAddProduct_MalformedJSON() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewBufferString("{no json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "AddProduct", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestGetProduct_NotFound() {
	suite.mockLedger.On("GetProduct", mock.Anything, "NOPE").
		Return(nil, fmt.Errorf("%w: product code %q", apperrors.ErrNotFound, "NOPE")).Once()

	w := suite.performJSON(http.MethodGet, "/api/v1/products/NOPE", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestListProducts_PassesQuery() {
	suite.mockLedger.On("ListProducts", mock.Anything, "coca").
		Return([]domain.Product{{Code: "COC600"}}, nil).Once()

	w := suite.performJSON(http.MethodGet, "/api/v1/products?q=coca", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListProductsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Products, 1)
	suite.Equal("COC600", resp.Products[0].Code)
}

func (suite *HandlerTestSuite) TestDeleteProduct_NoContent() {
	suite.mockLedger.On("DeleteProduct", mock.Anything, "COC600").Return(nil).Once()

	w := suite.performJSON(http.MethodDelete, "/api/v1/products/COC600", nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlerTestSuite) TestRecordSale_Created() {
	balance := decimal.RequireFromString("40.00")
	receipt := &domain.SaleReceipt{
		Event: domain.SaleEvent{
			ProductCode: "SAB45",
			Quantity:    5,
			Total:       decimal.RequireFromString("40.00"),
			Kind:        domain.KindOnAccount,
			Person:      "Doña Mari",
		},
		NewStock:    5,
		DebtBalance: &balance,
	}
	suite.mockLedger.On("RecordSale", mock.Anything, mock.AnythingOfType("dto.SaleRequest")).
		Return(receipt, nil).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/sales", gin.H{
		"code": "SAB45", "quantity": 5, "person": "Doña Mari", "kind": "Fiado",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.SaleResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(5, resp.NewStock)
	suite.Require().NotNil(resp.DebtBalance)
	suite.Equal("40.00", resp.DebtBalance.StringFixed(2))
}

func (suite *HandlerTestSuite) TestRecordSale_KindRejectedByBinding() {
	w := suite.performJSON(http.MethodPost, "/api/v1/sales", gin.H{
		"code": "SAB45", "quantity": 5, "kind": "Pago",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "RecordSale", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestRecordSale_InsufficientStockConflict() {
	suite.mockLedger.On("RecordSale", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: product %q has stock %d, requested %d",
			apperrors.ErrInsufficientStock, "SAB45", 2, 3)).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/sales", gin.H{
		"code": "SAB45", "quantity": 3, "kind": "Efectivo",
	})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestRecordPayment_Created() {
	entry := domain.DebtEntry{Person: "Doña Mari"}
	entry.Recalculate()
	suite.mockLedger.On("RecordPayment", mock.Anything, mock.AnythingOfType("dto.PaymentRequest")).
		Return(&domain.PaymentReceipt{
			Person: "Doña Mari",
			Amount: decimal.RequireFromString("40.00"),
			Entry:  entry,
		}, nil).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/payments", gin.H{
		"person": "Doña Mari", "amount": "40.00",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.PaymentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("settled", resp.StatusCode)
	suite.Equal("AL DÍA", resp.StatusLabel)
}

func (suite *HandlerTestSuite) TestRecordPayment_InvalidAmount() {
	suite.mockLedger.On("RecordPayment", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrInvalidPayment)).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/payments", gin.H{
		"person": "Luis", "amount": "-5",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestListDebtors_OK() {
	suite.mockLedger.On("ListDebtors", mock.Anything).Return(&domain.DebtorsSummary{
		Entries:   []domain.DebtEntry{{Person: "Doña Mari", Balance: decimal.RequireFromString("30.00"), Status: "ADEUDA $30.00"}},
		TotalOwed: decimal.RequireFromString("30.00"),
	}, nil).Once()

	w := suite.performJSON(http.MethodGet, "/api/v1/debtors", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.DebtorsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Debtors, 1)
	suite.Equal("owes", resp.Debtors[0].StatusCode)
}

func (suite *HandlerTestSuite) TestWindowTotals_InvalidWindow() {
	suite.mockReporting.On("WindowTotals", mock.Anything, domain.ReportWindow("fortnight")).
		Return(nil, fmt.Errorf("%w: unknown report window", apperrors.ErrValidation)).Once()

	w := suite.performJSON(http.MethodGet, "/api/v1/reports/totals?window=fortnight", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestWindowTotals_DefaultsToToday() {
	suite.mockReporting.On("WindowTotals", mock.Anything, domain.WindowToday).
		Return(&domain.WindowTotals{Window: domain.WindowToday}, nil).Once()

	w := suite.performJSON(http.MethodGet, "/api/v1/reports/totals", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockReporting.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestBackup_ReturnsPath() {
	suite.mockLedger.On("Backup", mock.Anything).
		Return("backups/backup_20260831_120000/tienda.xlsx", nil).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/store/backup", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.FileOpResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("backups/backup_20260831_120000/tienda.xlsx", resp.Path)
}

func (suite *HandlerTestSuite) TestExport_MissingDir() {
	w := suite.performJSON(http.MethodPost, "/api/v1/store/export", gin.H{})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "Export", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestReload_NoContent() {
	suite.mockLedger.On("Reload", mock.Anything).Return(nil).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/store/reload", nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

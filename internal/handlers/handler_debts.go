package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/DeliciasWera/tienda_ledger_app/internal/apperrors"
	portssvc "github.com/DeliciasWera/tienda_ledger_app/internal/core/ports/services"
	"github.com/DeliciasWera/tienda_ledger_app/internal/dto"
	"github.com/DeliciasWera/tienda_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// debtHandler handles HTTP requests for the debt ledger and payment summary.
type debtHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newDebtHandler(ls portssvc.LedgerSvcFacade) *debtHandler {
	return &debtHandler{ledgerService: ls}
}

// registerDebtRoutes registers routes related to debts and payments.
func registerDebtRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newDebtHandler(ledgerService)

	rg.POST("/payments", h.recordPayment)
	rg.GET("/debtors", h.listDebtors)
	rg.GET("/payments/summary", h.paymentSummary)
}

func (h *debtHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	receipt, err := h.ledgerService.RecordPayment(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidPayment) || errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid payment request", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to record payment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToPaymentResponse(receipt))
}

func (h *debtHandler) listDebtors(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.ledgerService.ListDebtors(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list debtors", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list debtors"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDebtorsResponse(summary))
}

func (h *debtHandler) paymentSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.ledgerService.PaymentSummary(c.Request.Context())
	if err != nil {
		logger.Error("Failed to get payment summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get payment summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentSummaryResponse(report))
}

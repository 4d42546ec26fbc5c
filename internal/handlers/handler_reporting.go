package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/DeliciasWera/tienda_ledger_app/internal/apperrors"
	"github.com/DeliciasWera/tienda_ledger_app/internal/core/domain"
	portssvc "github.com/DeliciasWera/tienda_ledger_app/internal/core/ports/services"
	"github.com/DeliciasWera/tienda_ledger_app/internal/dto"
	"github.com/DeliciasWera/tienda_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for sales reports.
type reportingHandler struct {
	ledgerService    portssvc.LedgerSvcFacade
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(ls portssvc.LedgerSvcFacade, rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{ledgerService: ls, reportingService: rs}
}

// registerReportingRoutes registers routes related to reporting.
func registerReportingRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(ledgerService, reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/overview", h.overview)
		reports.GET("/totals", h.windowTotals)
		reports.GET("/products", h.productBreakdown)
		reports.GET("/monthly", h.monthlyRollup)
	}
}

func (h *reportingHandler) overview(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	overview, err := h.reportingService.Overview(c.Request.Context())
	if err != nil {
		logger.Error("Failed to build report overview", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report overview"})
		return
	}

	c.JSON(http.StatusOK, overview)
}

func (h *reportingHandler) windowTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	window := domain.ReportWindow(c.DefaultQuery("window", string(domain.WindowToday)))

	totals, err := h.reportingService.WindowTotals(c.Request.Context(), window)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to build window totals", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build window totals"})
		}
		return
	}

	c.JSON(http.StatusOK, totals)
}

func (h *reportingHandler) productBreakdown(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	window := domain.ReportWindow(c.DefaultQuery("window", string(domain.WindowAll)))

	rows, err := h.reportingService.ProductBreakdown(c.Request.Context(), window)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to build product breakdown", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build product breakdown"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ProductBreakdownResponse{Window: window, Products: rows})
}

func (h *reportingHandler) monthlyRollup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	months, err := h.ledgerService.MonthlyRollup(c.Request.Context())
	if err != nil {
		logger.Error("Failed to build monthly rollup", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build monthly rollup"})
		return
	}

	c.JSON(http.StatusOK, dto.MonthlyRollupResponse{Months: months})
}

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

// maintenanceHandler handles HTTP requests for workbook maintenance:
// reload, backup and export.
type maintenanceHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newMaintenanceHandler(ls portssvc.LedgerSvcFacade) *maintenanceHandler {
	return &maintenanceHandler{ledgerService: ls}
}

// registerMaintenanceRoutes registers routes related to the workbook store.
func registerMaintenanceRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newMaintenanceHandler(ledgerService)

	store := rg.Group("/store")
	{
		store.POST("/reload", h.reload)
		store.POST("/backup", h.backup)
		store.POST("/export", h.export)
	}
}

func (h *maintenanceHandler) reload(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.ledgerService.Reload(c.Request.Context()); err != nil {
		logger.Error("Failed to reload workbook", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload workbook"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *maintenanceHandler) backup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	path, err := h.ledgerService.Backup(c.Request.Context())
	if err != nil {
		logger.Error("Failed to back up workbook", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to back up workbook"})
		return
	}

	c.JSON(http.StatusOK, dto.FileOpResponse{Path: path})
}

func (h *maintenanceHandler) export(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Export", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	path, err := h.ledgerService.Export(c.Request.Context(), req.Dir)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to export workbook", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export workbook"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.FileOpResponse{Path: path})
}

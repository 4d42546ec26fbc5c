package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/DeliciasWera/tienda_ledger_app/internal/adapters/workbook"
	"github.com/DeliciasWera/tienda_ledger_app/internal/core/ports/services"
	coresvc "github.com/DeliciasWera/tienda_ledger_app/internal/core/services"
	"github.com/DeliciasWera/tienda_ledger_app/internal/dto"
	"github.com/DeliciasWera/tienda_ledger_app/internal/handlers"
	"github.com/DeliciasWera/tienda_ledger_app/internal/middleware"
	"github.com/DeliciasWera/tienda_ledger_app/internal/platform/config"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repo := workbook.NewXlsxRepository(cfg.DataFile, cfg.BackupDir, logger)

	ledger, err := coresvc.NewLedgerService(context.Background(), repo)
	if err != nil {
		logger.Error("Failed to load workbook", slog.String("error", err.Error()))
		os.Exit(1)
	}
	reporting := coresvc.NewReportingService(ledger)

	container := &services.ServiceContainer{
		Ledger:    ledger,
		Reporting: reporting,
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	dto.RegisterValidations()

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT value", slog.String("value", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)
	r.Use(middleware.RateLimit(ipLimiter))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("data_file", cfg.DataFile))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for interrupt, then drain requests and save the workbook.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", slog.String("error", err.Error()))
	}
	if err := ledger.Close(ctx); err != nil {
		logger.Error("Final workbook save failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Workbook saved, goodbye")
}

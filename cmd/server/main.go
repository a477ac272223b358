package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gstbill/internal/config"
	"gstbill/internal/handler"
	"gstbill/internal/logger"
	"gstbill/internal/metrics"
	"gstbill/internal/repository/postgres"
	"gstbill/internal/router"
	"gstbill/internal/scheduler"
	"gstbill/internal/service"
	"gstbill/internal/validator"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zl, err := logger.New(cfg.Log, cfg.Server.Environment)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	// Money goes over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	m := metrics.New(nil)

	// Initialize repositories
	billRepo := postgres.NewBillRepo(db)
	saleRepo := postgres.NewSaleRepo(db)
	dashboardRepo := postgres.NewDashboardRepo(db)

	// Initialize services
	engine := validator.NewEngine(validator.NewBuiltinRegistry())
	calcSvc := service.NewCalculatorService(cfg.Billing)
	billSvc := service.NewBillService(billRepo, saleRepo, engine, cfg.Billing, m)
	salesSvc := service.NewSalesService(saleRepo, m)
	dashboardSvc := service.NewDashboardService(dashboardRepo, saleRepo)

	// Background jobs
	sched := scheduler.New(salesSvc, m, zl)
	if cfg.Jobs.LedgerSnapshot != "" {
		if err := sched.ScheduleLedgerSnapshot(cfg.Jobs.LedgerSnapshot); err != nil {
			return err
		}
	}
	sched.Start()

	// Initialize handlers
	calcH := handler.NewCalculatorHandler(calcSvc)
	billH := handler.NewBillHandler(billSvc)
	salesH := handler.NewSalesHandler(salesSvc)
	dashH := handler.NewDashboardHandler(dashboardSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, zl, m, calcH, billH, salesH, dashH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server starting", zap.String("addr", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	sched.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

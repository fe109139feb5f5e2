package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/kounterpro/billing/internal/config"
	"github.com/kounterpro/billing/internal/http"
	"github.com/kounterpro/billing/internal/log"
	"github.com/kounterpro/billing/internal/repository"
	"github.com/kounterpro/billing/internal/service"
	"github.com/kounterpro/billing/internal/storage/db"
	"github.com/kounterpro/billing/internal/telemetry"
	"github.com/kounterpro/billing/pkg/cmdutil"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running server application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		Postgres config.Postgres
		HTTP     config.HTTP
		Billing  config.Billing
		Otel     config.Otel
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating pgx pool: %w", err)
	}
	defer pgxPool.Close()

	dbClient := db.NewClient(pgxPool)

	invoiceRepository := repository.NewInvoiceRepository(dbClient)
	inventoryRepository := repository.NewInventoryRepository(dbClient)
	outboxMsgRepository := repository.NewOutboxMsgRepository(dbClient)

	stockGuard := service.NewStockGuard(inventoryRepository)
	invoiceService := service.NewInvoiceService(
		dbClient, logger, invoiceRepository, outboxMsgRepository,
		stockGuard, cfg.Billing.InvoicePrefix,
	)
	inventoryService := service.NewInventoryService(logger, inventoryRepository)

	interruptChan := cmdutil.InterruptChan()

	svc, err := http.New(cfg.HTTP, logger, invoiceService, inventoryService, dbClient)
	if err != nil {
		return fmt.Errorf("error creating http service: %w", err)
	}

	cleanup, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("error running http service: %w", err)
	}
	logger.InfoContext(ctx, "http service started", slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)))

	<-interruptChan

	logger.InfoContext(ctx, "http service is shutting down")
	if err := cleanup(ctx); err != nil {
		logger.ErrorContext(ctx, "error shutting down http service", slog.Any("error", err))
	}

	logger.InfoContext(ctx, "http service is stopped")

	return nil
}

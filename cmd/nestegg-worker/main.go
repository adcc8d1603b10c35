package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"nestegg/internal/amqp"
	"nestegg/internal/backend"
	"nestegg/internal/config"
	"nestegg/internal/engine"
	"nestegg/internal/limits"
	applog "nestegg/internal/log"
	"nestegg/internal/store"
	"nestegg/internal/store/sheets"
	"nestegg/internal/strategies"
	"nestegg/internal/worker"
)

func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Level: applog.LevelFromEnv(), Component: "worker"})
	applog.SetDefault(logger)

	logger.Info("starting nestegg-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", "error", err)
		os.Exit(1)
	}

	table, err := limits.ForYear(cfg.PlanYear)
	if err != nil {
		logger.Error("failed to load contribution limit table", "error", err, "year", cfg.PlanYear)
		os.Exit(1)
	}
	eng := engine.New(engine.NewCalculator(table), strategies.DefaultRegistry(), logger.Logger)

	be, err := backend.Create(cfg, logger.Logger)
	if err != nil {
		logger.Error("failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if be.Cleanup != nil {
		defer be.Cleanup()
	}

	// The sheet deliverable mirror is optional.
	var mirror store.ResultWriter
	if cfg.GoogleSpreadsheetID != "" {
		sheetsClient, err := sheets.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		if err := sheetsClient.EnsureHeader(context.Background()); err != nil {
			logger.Error("failed to prepare sheet header", "error", err)
			os.Exit(1)
		}
		mirror = sheetsClient
		logger.Info("sheet mirror enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("sheet mirror disabled, no GOOGLE_SPREADSHEET_ID provided")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	allocWorker := worker.New(be.Store, eng, mirror, cfg.BatchSize, cfg.Concurrency)

	// Recompute anything that went stale while the worker was down.
	logger.Info("performing startup stale scan")
	if err := allocWorker.ProcessStale(ctx); err != nil {
		logger.Error("startup stale scan failed", "error", err)
	}

	go func() {
		err := amqpClient.ConsumeAllocationRequests(ctx, func(msg *amqp.AllocationRequest) error {
			return allocWorker.HandleRequest(ctx, msg)
		})
		if err != nil && err != context.Canceled {
			logger.Error("message consumption failed", "error", err)
		}
		cancel()
	}()

	// Periodic scan catches requests lost between publish and consume.
	ticker := time.NewTicker(cfg.ScanInterval)
	defer ticker.Stop()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := allocWorker.ProcessStale(ctx); err != nil {
					logger.Error("periodic stale scan failed", "error", err)
				}
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("context cancelled")
	}

	cancel()
	logger.Info("worker shutdown complete")
}

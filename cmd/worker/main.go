package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/tradebook-app/tradebook/internal/app"
	"github.com/tradebook-app/tradebook/internal/dueinvoices"
	"github.com/tradebook-app/tradebook/internal/masterdata/products"
	"github.com/tradebook-app/tradebook/internal/platform/cache"
	"github.com/tradebook-app/tradebook/internal/platform/db"
	"github.com/tradebook-app/tradebook/internal/reports"
	"github.com/tradebook-app/tradebook/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, report invalidation disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	productsRepo := products.NewRepository(pool)
	productsService := products.NewService(productsRepo, logger)

	dueInvoicesRepo := dueinvoices.NewRepository(pool)
	dueInvoicesService := dueinvoices.NewService(dueInvoicesRepo, logger)

	reportsRepo := reports.NewRepository(pool)
	reportsCache := cache.NewJSONCache(redisClient, "reports", cfg.ReportCacheTTL)
	reportsService := reports.NewService(reportsRepo, reportsCache, logger)

	stockScanTask, err := jobs.NewStockLowScanTask()
	if err != nil {
		logger.Error("build stock scan task", slog.Any("error", err))
		os.Exit(1)
	}
	snapshotTask, err := jobs.NewDueInvoicesSnapshotTask()
	if err != nil {
		logger.Error("build snapshot task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskStockLowScan, Handler: jobs.NewStockLowScanHandler(productsService, logger)},
			{Type: jobs.TaskDueInvoicesSnapshot, Handler: jobs.NewDueInvoicesSnapshotHandler(dueInvoicesService, reportsService, logger)},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 7 * * *", Task: stockScanTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "30 0 * * *", Task: snapshotTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}

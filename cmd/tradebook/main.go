package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/tradebook-app/tradebook/internal/app"
	"github.com/tradebook-app/tradebook/internal/dueinvoices"
	"github.com/tradebook-app/tradebook/internal/finance"
	"github.com/tradebook-app/tradebook/internal/masterdata/customers"
	"github.com/tradebook-app/tradebook/internal/masterdata/products"
	"github.com/tradebook-app/tradebook/internal/masterdata/suppliers"
	"github.com/tradebook-app/tradebook/internal/payments"
	"github.com/tradebook-app/tradebook/internal/platform/cache"
	"github.com/tradebook-app/tradebook/internal/platform/db"
	"github.com/tradebook-app/tradebook/internal/purchases"
	"github.com/tradebook-app/tradebook/internal/reports"
	"github.com/tradebook-app/tradebook/internal/sales"
	"github.com/tradebook-app/tradebook/internal/settings"
	"github.com/tradebook-app/tradebook/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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

	// Reports degrade to uncached reads when Redis is unreachable.
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, report caching disabled", slog.Any("error", err))
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

	settingsRepo := settings.NewRepository(pool)
	settingsService := settings.NewService(settingsRepo, logger)
	settingsHandler := settings.NewHandler(logger, settingsService)

	productsRepo := products.NewRepository(pool)
	productsService := products.NewService(productsRepo, logger)
	productsHandler := products.NewHandler(logger, productsService)

	customersRepo := customers.NewRepository(pool)
	customersService := customers.NewService(customersRepo, logger)
	customersHandler := customers.NewHandler(logger, customersService)

	suppliersRepo := suppliers.NewRepository(pool)
	suppliersService := suppliers.NewService(suppliersRepo, logger)
	suppliersHandler := suppliers.NewHandler(logger, suppliersService)

	purchasesRepo := purchases.NewRepository(pool)
	purchasesService := purchases.NewService(purchasesRepo, settingsService, logger)
	purchasesHandler := purchases.NewHandler(logger, purchasesService)

	salesRepo := sales.NewRepository(pool)
	salesService := sales.NewService(salesRepo, settingsService, finance.CostingConfig{Window: cfg.CostingWindow}, logger)
	salesHandler := sales.NewHandler(logger, salesService)

	paymentsRepo := payments.NewRepository(pool)
	paymentsService := payments.NewService(paymentsRepo, settingsService, logger)
	paymentsHandler := payments.NewHandler(logger, paymentsService)

	dueInvoicesRepo := dueinvoices.NewRepository(pool)
	dueInvoicesService := dueinvoices.NewService(dueInvoicesRepo, logger)
	dueInvoicesHandler := dueinvoices.NewHandler(logger, dueInvoicesService)

	reportsRepo := reports.NewRepository(pool)
	reportsCache := cache.NewJSONCache(redisClient, "reports", cfg.ReportCacheTTL)
	reportsService := reports.NewService(reportsRepo, reportsCache, logger)
	reportsHandler := reports.NewHandler(logger, reportsService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobsHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Middleware: app.MiddlewareConfig{
			Logger: logger,
			Config: cfg,
		},
		ProductsHandler:    productsHandler,
		CustomersHandler:   customersHandler,
		SuppliersHandler:   suppliersHandler,
		PurchasesHandler:   purchasesHandler,
		SalesHandler:       salesHandler,
		PaymentsHandler:    paymentsHandler,
		DueInvoicesHandler: dueInvoicesHandler,
		ReportsHandler:     reportsHandler,
		SettingsHandler:    settingsHandler,
		JobsHandler:        jobsHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

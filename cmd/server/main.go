package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/warp/stockledger/internal/adapter/http"
	"github.com/warp/stockledger/internal/adapter/http/handler"
	"github.com/warp/stockledger/internal/adapter/http/middleware"
	postgresRepo "github.com/warp/stockledger/internal/adapter/repository/postgres"
	redisRepo "github.com/warp/stockledger/internal/adapter/repository/redis"
	"github.com/warp/stockledger/internal/domain"
	"github.com/warp/stockledger/internal/infrastructure/config"
	"github.com/warp/stockledger/internal/infrastructure/logger"
	"github.com/warp/stockledger/internal/infrastructure/metrics"
	"github.com/warp/stockledger/internal/infrastructure/postgres"
	"github.com/warp/stockledger/internal/infrastructure/redis"
	"github.com/warp/stockledger/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "stockledger"})

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(log, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	retrier := postgresRepo.NewRetrier(log, m)
	idGen := postgresRepo.NewULIDGenerator()
	productRepo := postgresRepo.NewProductRepository(pool)
	txnRepo := postgresRepo.NewTransactionRepository(pool)
	lineItemRepo := postgresRepo.NewLineItemRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	categoryRepo := postgresRepo.NewCategoryRepository(pool)
	supplierRepo := postgresRepo.NewSupplierRepository(pool)
	customerRepo := postgresRepo.NewCustomerRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	productCache := redisRepo.NewCache(redisClient)

	// Use cases
	productUC := usecase.NewProductUseCase(productRepo, idGen, productCache)
	transactionUC := usecase.NewTransactionUseCase(txnRepo, customerRepo, supplierRepo, idGen, m)
	ledgerUC := usecase.NewLedgerUseCase(txManager, retrier, productRepo, txnRepo, lineItemRepo, auditRepo, idGen, m)
	catalogUC := usecase.NewCatalogUseCase(categoryRepo, supplierRepo, customerRepo, idGen)
	reconciliationUC := usecase.NewReconciliationUseCase(productRepo, txnRepo, lineItemRepo, m)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ProductHandler:        handler.NewProductHandler(productUC),
		SaleHandler:           handler.NewTransactionHandler(transactionUC, domain.TransactionKindSale),
		PurchaseHandler:       handler.NewTransactionHandler(transactionUC, domain.TransactionKindPurchase),
		SaleItemHandler:       handler.NewLineItemHandler(ledgerUC, domain.TransactionKindSale),
		PurchaseItemHandler:   handler.NewLineItemHandler(ledgerUC, domain.TransactionKindPurchase),
		CatalogHandler:        handler.NewCatalogHandler(catalogUC),
		ReconciliationHandler: handler.NewReconciliationHandler(reconciliationUC),
		HealthHandler:         handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:      idempotencyStore,
		IdempotencyTTL:        cfg.IdempotencyTTL,
		RateLimiter:           middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
		Logger:                log,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stopSweep := make(chan struct{})
	if cfg.ReconcileInterval > 0 {
		go runReconcileSweep(ctx, log, reconciliationUC, cfg.ReconcileInterval, stopSweep)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	close(stopSweep)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

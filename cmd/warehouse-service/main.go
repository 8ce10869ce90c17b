package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/RodolfoDevApp/eventshop-warehouse-go/internal/api"
	"github.com/RodolfoDevApp/eventshop-warehouse-go/internal/application"
	"github.com/RodolfoDevApp/eventshop-warehouse-go/internal/config"
	"github.com/RodolfoDevApp/eventshop-warehouse-go/internal/domain"
	"github.com/RodolfoDevApp/eventshop-warehouse-go/internal/infrastructure/db"
	"github.com/RodolfoDevApp/eventshop-warehouse-go/internal/infrastructure/logging"
	"github.com/RodolfoDevApp/eventshop-warehouse-go/internal/infrastructure/memory"
	"github.com/RodolfoDevApp/eventshop-warehouse-go/internal/infrastructure/messaging"
	"github.com/RodolfoDevApp/eventshop-warehouse-go/internal/infrastructure/metrics"
	outboxinfra "github.com/RodolfoDevApp/eventshop-warehouse-go/internal/infrastructure/outbox"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting warehouse service",
		zap.String("port", cfg.HttpPort),
		zap.String("storage", cfg.StorageDriver),
		zap.Bool("messaging", cfg.MessagingEnabled))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Warehouse layout
	warehouse, err := application.BuildWarehouse(cfg.Warehouse)
	if err != nil {
		logger.Fatal("invalid warehouse layout", zap.Error(err))
	}

	// Repos
	var (
		journal    domain.MovementJournal
		outboxRepo domain.OutboxRepository
	)
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		dbConn, err := sql.Open("pgx", cfg.PgDsn)
		if err != nil {
			logger.Fatal("failed to open postgres", zap.Error(err))
		}
		defer dbConn.Close()

		if err := dbConn.PingContext(ctx); err != nil {
			logger.Fatal("failed to ping postgres", zap.Error(err))
		}
		if err := db.EnsureSchema(ctx, dbConn); err != nil {
			logger.Fatal("failed to create schema", zap.Error(err))
		}
		journal = db.NewPgMovementJournal(dbConn)
		outboxRepo = db.NewPgOutboxRepository(dbConn)
	default:
		journal = memory.NewMovementJournal()
		outboxRepo = memory.NewOutboxRepository()
	}

	// Application services
	outboxWriter := application.NewOutboxWriter(outboxRepo)
	manager := application.NewWarehouseManager(
		warehouse,
		domain.NewMovementIDGenerator(nil),
		journal,
		outboxWriter,
		nil,
		logger,
	)
	if err := manager.SeedMovementIDs(ctx); err != nil {
		logger.Fatal("failed to seed movement ids", zap.Error(err))
	}
	recorder := metrics.NewRecorder(manager.Load)
	manager.SetObserver(recorder)

	// Messaging: outbox dispatcher + catalog consumer
	var outboxDone <-chan struct{}
	if cfg.MessagingEnabled {
		producer := messaging.NewProducerBus(cfg.RabbitUri)
		dispatcher := outboxinfra.NewDispatcher(
			outboxRepo,
			producer,
			cfg.OutboxMaxRetry,
			cfg.OutboxBatchSize,
			logger,
		)
		outboxDone = outboxinfra.NewScheduler(dispatcher, cfg.OutboxIntervalSec, logger).Start(ctx)

		catalogBus := messaging.NewCatalogEventBus(cfg.RabbitUri, messaging.CatalogQueuePrefix)
		productCreatedHandler := application.NewProductCreatedHandler(manager, cfg.Warehouse.SystemActorID, logger)
		if err := messaging.RegisterCatalogSubscriptions(ctx, catalogBus, productCreatedHandler, logger); err != nil {
			logger.Fatal("failed to start catalog subscriptions", zap.Error(err))
		}
	}

	// HTTP API
	mux := http.NewServeMux()
	apiServer := api.NewServer(manager, recorder.Handler(), logger)
	apiServer.RegisterRoutes(mux)

	httpSrv := &http.Server{
		Addr:              ":" + cfg.HttpPort,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP listening", zap.String("addr", httpSrv.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server error", zap.Error(err))
		}
	}()

	// Wait for signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutting down warehouse service", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown error", zap.Error(err))
	}

	cancel()
	if outboxDone != nil {
		select {
		case <-outboxDone:
		case <-shutdownCtx.Done():
			logger.Warn("outbox scheduler did not stop in time")
		}
	}
}

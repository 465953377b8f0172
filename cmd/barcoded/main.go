package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"barcode_lookup/internal/api"
	"barcode_lookup/internal/config"
	"barcode_lookup/internal/metrics"
	"barcode_lookup/internal/publisher"
	"barcode_lookup/internal/scheduler"
	"barcode_lookup/internal/service"
	"barcode_lookup/internal/source/openfoodfacts"
	"barcode_lookup/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	var events service.Publisher
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		events = rabbitMQ
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	foodStore := postgres.NewFoodMasterStore(db)
	cacheStore := postgres.NewExternalCacheStore(db)
	txManager := postgres.NewTransactionManager(db)

	offClient := openfoodfacts.New(openfoodfacts.Config{
		BaseURL:        cfg.OpenFoodFacts.BaseURL,
		UserAgent:      cfg.OpenFoodFacts.UserAgent,
		Timeout:        cfg.OpenFoodFacts.Timeout,
		MaxAttempts:    cfg.OpenFoodFacts.Retry.MaxAttempts,
		InitialBackoff: cfg.OpenFoodFacts.Retry.InitialBackoff,
		MaxBackoff:     cfg.OpenFoodFacts.Retry.MaxBackoff,
	}, logger)

	lookupService := service.NewLookupService(foodStore, cacheStore, offClient, events, m, logger, cfg.Lookup)
	promotionService := service.NewPromotionService(foodStore, cacheStore, txManager, events, m, logger, cfg.Promotion)
	staleReporter := service.NewStaleReporter(cacheStore, m, logger, cfg.Lookup.StaleAfter)

	sched := scheduler.NewScheduler(staleReporter, cfg.Cache.ReportInterval, cfg.Cache.ReportTimeout, logger)

	httpServer := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      api.NewServer(lookupService, promotionService, cacheStore, db, registry, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting barcode lookup service",
		"address", cfg.Server.Address,
		"source", offClient.Name(),
		"stale_after", cfg.Lookup.StaleAfter,
		"single_flight", cfg.Lookup.SingleFlightEnabled(),
		"events", events != nil,
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		if err := sched.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("service stopped with error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/go-order-lookup/internal/config"
	"github.com/ariefcatur/go-order-lookup/internal/httpx"
	"github.com/ariefcatur/go-order-lookup/internal/ingest"
	kafkax "github.com/ariefcatur/go-order-lookup/internal/kafka"
	"github.com/ariefcatur/go-order-lookup/internal/logx"
	"github.com/ariefcatur/go-order-lookup/internal/orders"
	"github.com/ariefcatur/go-order-lookup/internal/postgres"
	"github.com/ariefcatur/go-order-lookup/internal/redisx"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logx.New(cfg.ServiceName, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()
	cache := redisx.NewOrderCache(rdb, cfg.CacheTTL)

	repo := &orders.Repo{DB: db}

	// restore cache from DB; a cold cache is not fatal
	if n, err := ingest.Warm(ctx, repo, cache, log); err != nil {
		log.Warnw("could not restore cache from database", "error", err)
	} else {
		log.Infow("cache restored", "orders", n)
	}

	// Kafka consumer
	svc := &ingest.Service{Repo: repo, Cache: cache, Log: log}
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.KafkaGroup, cfg.KafkaTopic, cfg.ConsumerWorkers, log)

	// HTTP
	router := httpx.NewRouter(log)
	oh := &httpx.OrdersHandler{Store: repo, Cache: cache, Log: log}
	oh.Register(router)
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 20 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infow("order consumer started", "group", cfg.KafkaGroup, "topic", cfg.KafkaTopic, "workers", cfg.ConsumerWorkers)
		return cons.Start(gctx, svc.HandleOrder)
	})
	g.Go(func() error {
		log.Infow("HTTP listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Errorw("exit", "error", err)
	}
	log.Info("server stopped")
}

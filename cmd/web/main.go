package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/go-order-lookup/internal/config"
	"github.com/ariefcatur/go-order-lookup/internal/httpx"
	"github.com/ariefcatur/go-order-lookup/internal/logx"
	"github.com/ariefcatur/go-order-lookup/internal/lookup"
	"github.com/ariefcatur/go-order-lookup/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	flag.StringVar(&cfg.WebAddr, "a", cfg.WebAddr, "page server address")
	flag.StringVar(&cfg.LookupAPIURL, "api", cfg.LookupAPIURL, "order API base URL")
	flag.DurationVar(&cfg.LookupTimeout, "timeout", cfg.LookupTimeout, "lookup timeout (0 = none)")
	flag.Parse()

	log := logx.New(cfg.ServiceName+"-web", cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	router := httpx.NewRouter(log)
	wh := &web.Handler{
		Fetcher:  lookup.NewClient(cfg.LookupAPIURL, cfg.LookupTimeout),
		Location: cfg.Location(),
		Log:      log,
	}
	wh.Register(router)

	srv := &http.Server{Addr: cfg.WebAddr, Handler: router}
	go func() {
		log.Infow("lookup page listening", "addr", cfg.WebAddr, "api", cfg.LookupAPIURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx2)
}

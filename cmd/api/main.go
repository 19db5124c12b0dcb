package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/apper-canvas/stylehub-port-matrix/api/routes"
	"github.com/apper-canvas/stylehub-port-matrix/internal/cart"
	"github.com/apper-canvas/stylehub-port-matrix/internal/catalog"
	"github.com/apper-canvas/stylehub-port-matrix/internal/store"
	"github.com/apper-canvas/stylehub-port-matrix/internal/wishlist"
	"github.com/apper-canvas/stylehub-port-matrix/pkg/config"
	"github.com/apper-canvas/stylehub-port-matrix/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	st, err := store.New(runCtx, cfg, logg)
	if err != nil {
		logg.Error(runCtx, "failed to bootstrap store", err)
		os.Exit(1)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logg.Error(context.Background(), "error closing store", err)
		}
	}()

	if cfg.Seed.Auto {
		seeder, err := catalog.NewSeeder(st, logg)
		if err != nil {
			logg.Error(runCtx, "failed to create seeder", err)
			os.Exit(1)
		}
		if err := seeder.Run(runCtx, cfg.Seed); err != nil {
			logg.Error(runCtx, "failed to seed catalog", err)
			os.Exit(1)
		}
	}

	catalogRepo, err := catalog.NewRepository(st, logg)
	if err != nil {
		logg.Error(runCtx, "failed to create catalog repository", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cart.ServiceParams{Store: st, Logger: logg})
	if err != nil {
		logg.Error(runCtx, "failed to create cart service", err)
		os.Exit(1)
	}

	wishlistService, err := wishlist.NewService(wishlist.ServiceParams{Store: st, Logger: logg})
	if err != nil {
		logg.Error(runCtx, "failed to create wishlist service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	handler := routes.NewRouter(routes.RouterParams{
		Config:     cfg,
		Logger:     logg,
		Store:      st,
		Catalog:    catalogRepo,
		Cart:       cartService,
		Wishlist:   wishlistService,
		Registerer: registry,
		Gatherer:   registry,
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx := logg.WithFields(runCtx, map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"backend": cfg.Store.Backend,
	})
	logg.Info(ctx, "starting api server")

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case <-runCtx.Done():
		logg.Info(ctx, "shutdown signal received")
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	err = multierr.Append(server.Shutdown(shutdownCtx), <-serveErr)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(ctx, "shutdown did not complete cleanly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped")
}

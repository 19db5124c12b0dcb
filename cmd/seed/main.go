package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/apper-canvas/stylehub-port-matrix/internal/catalog"
	"github.com/apper-canvas/stylehub-port-matrix/internal/store"
	"github.com/apper-canvas/stylehub-port-matrix/pkg/config"
	"github.com/apper-canvas/stylehub-port-matrix/pkg/logger"
)

// Loads the seed documents into the configured store backend and exits.
// Collections that already hold records are left untouched, so the command
// is safe to run repeatedly.
func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	st, err := store.New(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap store", err)
		os.Exit(1)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logg.Error(ctx, "error closing store", err)
		}
	}()

	seeder, err := catalog.NewSeeder(st, logg)
	if err != nil {
		logg.Error(ctx, "failed to create seeder", err)
		os.Exit(1)
	}
	if err := seeder.Run(ctx, cfg.Seed); err != nil {
		logg.Error(ctx, "failed to seed catalog", err)
		os.Exit(1)
	}

	logg.Info(logg.WithField(ctx, "backend", cfg.Store.Backend), "seed complete")
}

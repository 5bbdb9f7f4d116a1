// Command seed loads the demo users and terrains into the configured store.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nekogravitycat/terrain-booking-backend/internal/app"
	"github.com/nekogravitycat/terrain-booking-backend/internal/config"
	"github.com/nekogravitycat/terrain-booking-backend/internal/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{Service: "terrain-booking-seed"}).Fatal("failed to load config", "error", err)
	}

	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "terrain-booking-seed",
	})

	// Seeding always needs the tables.
	cfg.AutoMigrate = true

	store, err := app.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal("failed to open store", "driver", cfg.StoreDriver, "error", err)
	}
	defer store.Close()

	container := app.NewContainer(app.Config{
		Store:      store,
		BcryptCost: cfg.BcryptCost,
		Logger:     log,
	})

	res, err := app.Seed(ctx, container)
	if err != nil {
		log.Error("seeding failed", "error", err)
		store.Close()
		os.Exit(1)
	}

	log.Info("seed complete", "users_inserted", res.Users, "terrains_inserted", res.Terrains)
}

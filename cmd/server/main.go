package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nekogravitycat/terrain-booking-backend/internal/app"
	"github.com/nekogravitycat/terrain-booking-backend/internal/config"
	"github.com/nekogravitycat/terrain-booking-backend/internal/pkg/logger"
	"github.com/nekogravitycat/terrain-booking-backend/internal/reservation"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{Service: "terrain-booking"}).Fatal("failed to load config", "error", err)
	}

	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "terrain-booking",
	})
	slog.SetDefault(log.Logger)

	// Open store
	store, err := app.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal("failed to open store", "driver", cfg.StoreDriver, "error", err)
	}
	defer store.Close()
	log.Info("store ready", "driver", store.Driver, "auto_migrate", cfg.AutoMigrate)

	container := app.NewContainer(app.Config{
		IsProduction: cfg.IsProduction(),
		ProdOrigins:  cfg.ProdOrigins,
		Store:        store,
		BcryptCost:   cfg.BcryptCost,
		Policy: reservation.Policy{
			OpenHour:        cfg.BookingOpenHour,
			CloseHour:       cfg.BookingCloseHour,
			DefaultDuration: cfg.BookingDefaultDuration,
		},
		Logger: log,
	})

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           container.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server in separate goroutine
	go func() {
		log.Info("server running", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", "error", err)
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	log.Info("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server exited gracefully")
}

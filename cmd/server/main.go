// Command server runs the travlog booking marketplace API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"travlog/internal/app"
	"travlog/internal/config"
	"travlog/internal/infrastructure"
	"travlog/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "travlog: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := infrastructure.NewLogger(cfg.Logging)
	logger.Info("starting travlog server",
		slog.String("version", app.Version),
		slog.Int("port", cfg.Server.Port),
	)

	ctx := context.Background()

	client, err := store.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connecting to storage: %w", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error("disconnecting from storage", slog.String("error", err.Error()))
		}
	}()

	db := client.Database(cfg.Database.Name)
	services := store.NewServiceStore(db.Collection(cfg.Database.ServiceCollection), logger)
	bookings := store.NewBookingStore(db.Collection(cfg.Database.BookingCollection), logger)

	application := app.New(cfg, logger, services, bookings)
	return application.Run(ctx)
}

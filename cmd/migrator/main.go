package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/lmittmann/tint"

	"github.com/vancomm/maze-server/internal/config"
	"github.com/vancomm/maze-server/internal/database"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("unable to load .env", slog.Any("error", err))
		os.Exit(1)
	}

	var logger *slog.Logger
	if config.Development() {
		logger = slog.New(tint.NewHandler(os.Stderr, nil))
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	db, migrator, err := database.ConnectAndMigrate(ctx, database.Migrations)
	if err != nil {
		logger.Error("failed to connect to db", slog.Any("error", err))
		os.Exit(1)
	}

	err = reportVersion(logger, migrator)
	db.Close()
	if err != nil {
		os.Exit(1)
	}
}

type versioner interface {
	Version() (version uint, dirty bool, err error)
}

func reportVersion(logger *slog.Logger, v versioner) error {
	version, dirty, err := v.Version()
	if err != nil {
		logger.Error("failed to check migration version", slog.Any("error", err))
		return err
	}
	if dirty {
		logger.Error("database is dirty", slog.Uint64("version", uint64(version)))
		return fmt.Errorf("migration %d left the database dirty", version)
	}
	logger.Info("migration successful", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	return nil
}

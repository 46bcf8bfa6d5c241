package main

// Run database migrations:
//   go run ./cmd/migrate
//   go run ./cmd/migrate -down

import (
	"context"
	"flag"
	"os"

	"summarizer-backend/internal/shared/config"
	"summarizer-backend/internal/shared/storage/db"
	"summarizer-backend/internal/shared/telemetry"
)

func main() {
	down := flag.Bool("down", false, "roll back the most recent migration")
	flag.Parse()

	cfg := config.Load()
	telemetry.Configure(cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"error": err})
		os.Exit(1)
	}
	defer sqlDB.Close()

	if *down {
		err = db.RollbackLast(ctx, sqlDB)
	} else {
		err = db.RunMigrations(ctx, sqlDB)
	}
	if err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err, "down": *down})
		os.Exit(1)
	}
	telemetry.Info("migrate.done", map[string]any{"down": *down})
}

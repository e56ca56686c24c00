package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"shiftblocks/pkg/config"
	"shiftblocks/pkg/db"
	"shiftblocks/pkg/logging"
)

func main() {
	cfg := config.Load()
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = db.DefaultMigrationsPath
	}

	logger, err := logging.New(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Uses DIRECT_URL when set so the pooler is bypassed.
	if err := db.MigrateConfig(cfg.MigrationsPath, cfg); err != nil {
		logger.Fatal("migrate failed", zap.String("path", cfg.MigrationsPath), zap.Error(err))
	}

	// Sanity check the runtime DSN too. DSNs are not logged.
	pool, err := db.Open(context.Background(), cfg)
	if err != nil {
		logger.Fatal("runtime db open failed", zap.Error(err))
	}
	pool.Close()

	logger.Info("migrations applied", zap.String("path", cfg.MigrationsPath))
}

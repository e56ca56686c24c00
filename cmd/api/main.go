package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"shiftblocks/internal/display"
	"shiftblocks/internal/httpapi"
	"shiftblocks/internal/pgstore"
	"shiftblocks/internal/scheduling"
	"shiftblocks/pkg/config"
	"shiftblocks/pkg/db"
	"shiftblocks/pkg/logging"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("api stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	formatter, err := display.LoadFormatter(cfg.Scheduling.Timezone)
	if err != nil {
		return err
	}
	policy, err := scheduling.ParseCapacityPolicy(cfg.Scheduling.CapacityPolicy)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	ctrl := scheduling.NewController(store, scheduling.Options{
		Location: cfg.Scheduling.Location,
		Policy:   policy,
		Logger:   logger.Named("scheduling"),
	})

	if cfg.Scheduling.SeedDemoBlocks {
		if err := seedIfEmpty(ctx, ctrl, formatter.Location()); err != nil {
			return err
		}
	}

	router := httpapi.NewRouter(httpapi.Dependencies{
		Cfg:        cfg,
		Log:        logger.Named("http"),
		Controller: ctrl,
		Fmt:        formatter,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http listening",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("store", cfg.StoreDriver),
			zap.String("capacity_policy", string(ctrl.Policy())),
			zap.String("location", ctrl.Location()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("http serve: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (scheduling.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		return scheduling.NewMemoryStore(), func() {}, nil

	case config.StorePostgres:
		pool, err := db.Open(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("db open: %w", err)
		}
		if cfg.MigrationsPath != "" {
			if err := db.MigrateConfig(cfg.MigrationsPath, cfg); err != nil {
				pool.Close()
				return nil, nil, fmt.Errorf("migrate: %w", err)
			}
		}
		return pgstore.New(pool), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

// A persistent store keeps its blocks across restarts; seed only an empty one.
func seedIfEmpty(ctx context.Context, ctrl *scheduling.Controller, loc *time.Location) error {
	snap, err := ctrl.Snapshot(ctx)
	if err != nil {
		return err
	}
	if len(snap.Blocks) > 0 {
		return nil
	}
	if _, err := scheduling.SeedDemoBlocks(ctx, ctrl, time.Now(), loc); err != nil {
		return fmt.Errorf("seed demo blocks: %w", err)
	}
	return nil
}

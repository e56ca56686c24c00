package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shiftblocks/pkg/config"
)

// Open builds a pool from the runtime connection string and pings it once.
func Open(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	return OpenDSN(ctx, RuntimeConnString(cfg))
}

func OpenDSN(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pcfg, err := poolConfig(connString)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("new pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}

func poolConfig(connString string) (*pgxpool.Config, error) {
	pcfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if behindPgBouncer(connString) {
		// transaction pooling drops prepared statements between queries
		cc := pcfg.ConnConfig
		cc.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
		cc.StatementCacheCapacity = 0
		cc.DescriptionCacheCapacity = 0
	}
	return pcfg, nil
}

func behindPgBouncer(connString string) bool {
	return strings.Contains(strings.ToLower(connString), "pgbouncer=true")
}

// RuntimeConnString is DATABASE_URL, or a DSN assembled from the DB_* parts.
func RuntimeConnString(cfg config.Config) string {
	if url := strings.TrimSpace(cfg.DatabaseURL); url != "" {
		return url
	}
	db := cfg.DB
	if db.SSLMode == "" {
		db.SSLMode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		db.User, db.Password, db.Host, db.Port, db.Name, db.SSLMode)
}

// MigrationConnString is DIRECT_URL when set, so schema changes skip the pooler.
func MigrationConnString(cfg config.Config) string {
	if url := strings.TrimSpace(cfg.DirectURL); url != "" {
		return url
	}
	return RuntimeConnString(cfg)
}

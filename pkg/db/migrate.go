package db

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"shiftblocks/pkg/config"
)

const DefaultMigrationsPath = "file://migrations"

// MigrateConfig applies every pending up migration. Nothing to do is not an error.
func MigrateConfig(migrationsPath string, cfg config.Config) error {
	return MigrateDSN(migrationsPath, MigrationConnString(cfg))
}

func MigrateDSN(migrationsPath, connString string) error {
	if migrationsPath == "" {
		migrationsPath = DefaultMigrationsPath
	}
	m, err := migrate.New(migrationsPath, connString)
	if err != nil {
		return fmt.Errorf("open migrations %s: %w", migrationsPath, err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

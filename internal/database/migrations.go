package database

import (
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// RunMigrations applies every pending goose migration in migrationsFS and
// logs the resulting schema version.
func RunMigrations(db *sql.DB, migrationsFS fs.FS, logger *zap.Logger) error {
	if err := useMigrations(migrationsFS); err != nil {
		return err
	}

	before, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err), zap.Int64("from_version", before))
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	after, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	logger.Info("Schema up to date",
		zap.Int64("from_version", before),
		zap.Int64("version", after),
	)
	return nil
}

// GetMigrationStatus prints the applied state of each migration
func GetMigrationStatus(db *sql.DB, migrationsFS fs.FS) error {
	if err := useMigrations(migrationsFS); err != nil {
		return err
	}
	return goose.Status(db, ".")
}

func useMigrations(migrationsFS fs.FS) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

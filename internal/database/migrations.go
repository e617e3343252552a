package database

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// Migrator runs the goose migrations exactly once per process. Concurrent
// first callers share one in-flight run instead of racing duplicate DDL, and
// a failed run leaves the memo unset so the next caller retries.
type Migrator struct {
	db            *sql.DB
	migrationsDir string
	logger        *zap.Logger

	mu   sync.Mutex
	done bool
}

// NewMigrator creates a memoized migration runner over the given directory.
func NewMigrator(db *sql.DB, migrationsDir string, logger *zap.Logger) *Migrator {
	return &Migrator{db: db, migrationsDir: migrationsDir, logger: logger}
}

// Ensure brings the schema up to date. Safe for concurrent use; a no-op after
// the first successful run.
func (m *Migrator) Ensure() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.done {
		return nil
	}

	if err := RunMigrations(m.db, m.migrationsDir, m.logger); err != nil {
		return err
	}

	m.done = true
	return nil
}

// RunMigrations executes all pending database migrations.
func RunMigrations(db *sql.DB, migrationsDir string, logger *zap.Logger) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	logger.Info("Checking for pending migrations...", zap.String("dir", migrationsDir))

	if err := goose.Up(db, migrationsDir); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Migrations completed successfully")
	return nil
}

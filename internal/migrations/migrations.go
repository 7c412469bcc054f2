package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Set names one service's migration directory.
type Set string

const (
	Events   Set = "events"
	Requests Set = "requests"
)

//go:embed events/*.sql requests/*.sql
var MigrationFiles embed.FS

// table keeps each set's version separate when both services share a database.
func (s Set) table() string {
	return "schema_migrations_" + string(s)
}

// RunMigrations executes all pending migrations of set against db.
// If autoMigrate is false, it only logs the current version and applies nothing.
func RunMigrations(db *sql.DB, set Set, autoMigrate bool) error {
	if set != Events && set != Requests {
		return fmt.Errorf("unknown migration set %q", set)
	}

	sourceDriver, err := iofs.New(MigrationFiles, string(set))
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: set.table()})
	if err != nil {
		return fmt.Errorf("failed to create database driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	if dirty {
		slog.Warn("Database is in dirty state - migration was interrupted",
			"set", set,
			"version", version,
			"action", "attempting automatic recovery",
		)

		// Roll the marker back one step so Up replays the interrupted migration.
		// Migrations are written with IF NOT EXISTS and may be replayed.
		prev := int(version) - 1
		if prev == 0 {
			prev = -1
		}
		if err := m.Force(prev); err != nil {
			return fmt.Errorf("failed to recover dirty migration state at version %d: %w", version, err)
		}
		slog.Info("Recovered dirty migration state", "set", set, "forced_version", prev)
	}

	if !autoMigrate {
		slog.Info("Auto-migration disabled, skipping migrations",
			"set", set,
			"current_version", version,
			"dirty", dirty,
		)
		return nil
	}

	slog.Info("Running database migrations", "set", set, "current_version", version)

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("Database schema is up to date", "set", set, "version", version)
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	newVersion, _, err := m.Version()
	if err != nil {
		return fmt.Errorf("failed to get updated migration version: %w", err)
	}

	slog.Info("Database migrations completed successfully",
		"set", set,
		"from_version", version,
		"to_version", newVersion,
	)
	return nil
}

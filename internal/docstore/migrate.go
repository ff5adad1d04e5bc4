package docstore

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationFS embed.FS

// Migrate applies the pending schema migrations for the dialect and returns the resulting version.
func Migrate(db *sqlx.DB, dialect Dialect) (uint, error) {
	var (
		driver database.Driver
		err    error
	)
	switch dialect.Name {
	case PostgresDialect.Name:
		driver, err = postgres.WithInstance(db.DB, &postgres.Config{})
	case SQLiteDialect.Name:
		driver, err = sqlite.WithInstance(db.DB, &sqlite.Config{})
	default:
		return 0, fmt.Errorf("no migrations for dialect %q", dialect.Name)
	}
	if err != nil {
		return 0, fmt.Errorf("create %s migration driver: %w", dialect.Name, err)
	}

	source, err := iofs.New(migrationFS, "migrations/"+dialect.Name)
	if err != nil {
		return 0, fmt.Errorf("open migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, dialect.Name, driver)
	if err != nil {
		return 0, fmt.Errorf("create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return 0, fmt.Errorf("read migration version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("schema version %d is dirty", version)
	}
	return version, nil
}

// Package migrations embeds the versioned SQL schema and runs it with
// golang-migrate.
package migrations

import (
	"embed"
	"fmt"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/medisite/cms/internal/pkg/database"
	"github.com/medisite/cms/internal/pkg/env"
)

//go:embed sql
var files embed.FS

// Dialect returns the migration directory used for a DB_DRIVER value.
func Dialect(driver string) (string, error) {
	switch driver {
	case database.DriverMySQL:
		return "mysql", nil
	case database.DriverPostgres:
		return "postgres", nil
	case database.DriverSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// URL builds the golang-migrate database URL for driver from the DB_* environment.
func URL(driver string) (string, error) {
	user := url.UserPassword(env.GetEnv("DB_USER", ""), env.GetEnv("DB_PASSWORD", ""))
	host := env.GetEnv("DB_HOST", "127.0.0.1")
	name := env.GetEnv("DB_NAME", "")

	switch driver {
	case database.DriverMySQL:
		return fmt.Sprintf("mysql://%s@tcp(%s:%s)/%s?multiStatements=true&parseTime=true",
			user.String(), host, env.GetEnv("DB_PORT", "3306"), name), nil
	case database.DriverPostgres:
		return fmt.Sprintf("postgres://%s@%s:%s/%s?sslmode=disable",
			user.String(), host, env.GetEnv("DB_PORT", "5432"), name), nil
	case database.DriverSQLite:
		return "sqlite3://" + env.GetEnv("DB_NAME", "cms.db"), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// New prepares a migrator for driver against databaseURL using the embedded scripts.
func New(driver, databaseURL string) (*migrate.Migrate, error) {
	dialect, err := Dialect(driver)
	if err != nil {
		return nil, err
	}
	src, err := iofs.New(files, "sql/"+dialect)
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("init migrations: %w", err)
	}
	return m, nil
}

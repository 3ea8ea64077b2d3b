package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"go.uber.org/zap"

	"github.com/medisite/cms/internal/pkg/database"
	"github.com/medisite/cms/internal/pkg/env"
	applog "github.com/medisite/cms/internal/pkg/logger"
	"github.com/medisite/cms/internal/pkg/migrations"
)

func main() {
	// Load environment variables from .env file
	env.SetupEnvFile()
	log := applog.Must()
	defer func() { _ = log.Sync() }()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	driver := env.GetEnv("DB_DRIVER", database.DriverMySQL)

	dbURL, err := migrations.URL(driver)
	if err != nil {
		log.Fatal("failed to build database url", zap.Error(err))
	}

	log.Info("connecting to database",
		zap.String("driver", driver),
		zap.String("user", env.GetEnv("DB_USER", "")),
		zap.String("host", env.GetEnv("DB_HOST", "127.0.0.1")),
		zap.String("database", env.GetEnv("DB_NAME", "")),
	)

	m, err := migrations.New(driver, dbURL)
	if err != nil {
		log.Fatal("failed to initialize migrations", zap.Error(err))
	}

	defer func() {
		if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
			log.Warn("failed to close migration resources", zap.NamedError("source", sourceErr), zap.NamedError("database", dbErr))
		}
	}()

	switch command {
	case "up":
		// Apply all pending migrations
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal("failed to apply migrations", zap.Error(err))
		} else if errors.Is(err, migrate.ErrNoChange) {
			log.Info("no change: database is already up to date")
		} else {
			log.Info("migrations applied")
		}

	case "down":
		// Roll back the last migration
		if err := m.Steps(-1); err != nil {
			log.Fatal("failed to roll back the last migration", zap.Error(err))
		}
		log.Info("last migration rolled back")

	case "goto":
		if len(os.Args) < 3 {
			log.Fatal("please provide a version number")
		}
		version, err := strconv.ParseUint(os.Args[2], 10, 64)
		if err != nil {
			log.Fatal("invalid version number", zap.Error(err))
		}

		// Migrate to a specific version
		if err := m.Migrate(uint(version)); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal("failed to migrate", zap.Uint64("version", version), zap.Error(err))
		} else if errors.Is(err, migrate.ErrNoChange) {
			log.Info("no change: database is already at version", zap.Uint64("version", version))
		} else {
			log.Info("migrated", zap.Uint64("version", version))
		}

	case "status":
		// Show the current migration version
		version, dirty, err := m.Version()
		if err != nil {
			if errors.Is(err, migrate.ErrNilVersion) {
				log.Info("no migrations have been applied yet")
			} else {
				log.Fatal("failed to read migration version", zap.Error(err))
			}
		} else {
			log.Info("current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		}

	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: go run cmd/migrate/main.go [command]")
	fmt.Println("Available commands:")
	fmt.Println("  up     - Apply all pending migrations")
	fmt.Println("  down   - Roll back the last migration")
	fmt.Println("  goto N - Migrate to version N")
	fmt.Println("  status - Show the current migration version")
}

package db

import (
	"database/sql"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// RunMigrations brings the Postgres schema up to date from db/migrations.
func RunMigrations(dbURL string, logger *zap.Logger) {
	if dbURL == "" {
		logger.Fatal("POSTGRES_URL not set")
	}

	conn, err := sql.Open("postgres", dbURL)
	if err != nil {
		logger.Fatal("could not connect to postgres", zap.Error(err))
	}
	defer conn.Close()

	driver, err := postgres.WithInstance(conn, &postgres.Config{})
	if err != nil {
		logger.Fatal("could not start postgres driver", zap.Error(err))
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://db/migrations",
		"postgres", driver,
	)
	if err != nil {
		logger.Fatal("migration failed to start", zap.Error(err))
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		logger.Fatal("could not run up migrations", zap.Error(err))
	}

	logger.Info("migrations applied")
}

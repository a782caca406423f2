package pgstorage

import (
	"context"
	"os"
	"strconv"

	"github.com/InvArch/invarch-bridge-service/log"
	"github.com/gobuffalo/packr/v2"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/stdlib"
	migrate "github.com/rubenv/sql-migrate"
)

// RunMigrations will execute pending migrations if needed to keep
// the database updated with the latest changes
func RunMigrations(cfg Config) error {
	c, err := pgx.ParseConfig("postgres://" + cfg.User + ":" + cfg.Password + "@" + cfg.Host + ":" + cfg.Port + "/" + cfg.Name)
	if err != nil {
		return err
	}
	db := stdlib.OpenDB(*c)
	defer db.Close()

	var migrations = &migrate.PackrMigrationSource{Box: packr.New("invarch-bridge-db-migrations", "./migrations")}
	nMigrations, err := migrate.Exec(db, "postgres", migrations, migrate.Up)
	if err != nil {
		return err
	}

	log.Info("successfully ran ", nMigrations, " migrations Up")
	return nil
}

// InitOrReset will initializes the db running the migrations or
// will reset all the known data and rerun the migrations
func InitOrReset(cfg Config) error {
	// connect to database
	pgStorage, err := NewPostgresStorage(cfg)
	if err != nil {
		return err
	}
	defer pgStorage.Close()

	// reset db droping migrations table and schemas
	if _, err := pgStorage.Exec(context.Background(), "DROP TABLE IF EXISTS gorp_migrations CASCADE;"); err != nil {
		return err
	}
	if _, err := pgStorage.Exec(context.Background(), "DROP SCHEMA IF EXISTS portal CASCADE;"); err != nil {
		return err
	}

	// run migrations
	return RunMigrations(cfg)
}

// NewConfigFromEnv creates config from standard postgres environment variables,
func NewConfigFromEnv() Config {
	maxConns, _ := strconv.Atoi(getEnv("INVARCH_BRIDGE_DATABASE_MAXCONNS", "20"))
	return Config{
		User:     getEnv("INVARCH_BRIDGE_DATABASE_USER", "test_user"),
		Password: getEnv("INVARCH_BRIDGE_DATABASE_PASSWORD", "test_password"),
		Name:     getEnv("INVARCH_BRIDGE_DATABASE_NAME", "test_db"),
		Host:     getEnv("INVARCH_BRIDGE_DATABASE_HOST", "localhost"),
		Port:     getEnv("INVARCH_BRIDGE_DATABASE_PORT", "5432"),
		MaxConns: maxConns,
	}
}

func getEnv(key string, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if exists {
		return value
	}
	return defaultValue
}

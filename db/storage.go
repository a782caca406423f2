package db

import (
	"context"

	"github.com/InvArch/invarch-bridge-service/db/pgstorage"
	"github.com/InvArch/invarch-bridge-service/gerror"
	"github.com/InvArch/invarch-bridge-service/models"
	"github.com/InvArch/invarch-bridge-service/redisstorage"
)

const (
	databasePostgres = "postgres"
	databaseRedis    = "redis"
)

// Storage interface
type Storage interface {
	SetPrices(ctx context.Context, prices []*models.TokenPrice) error
	GetPrices(ctx context.Context) ([]*models.TokenPrice, error)
	SetPreferences(ctx context.Context, prefs *models.Preferences) error
	GetPreferences(ctx context.Context) (*models.Preferences, error)
	Close() error
}

// NewStorage creates a new Storage
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Database {
	case databasePostgres:
		s, err := pgstorage.NewPostgresStorage(pgConfig(cfg))
		if err != nil {
			return nil, err
		}
		return s, nil
	case databaseRedis:
		return redisstorage.NewRedisStorage(cfg.Redis)
	}
	return nil, gerror.ErrStorageNotRegister
}

// RunMigrations will execute pending migrations if needed to keep
// the database updated with the latest changes
func RunMigrations(cfg Config) error {
	if cfg.Database != databasePostgres {
		return nil
	}
	return pgstorage.RunMigrations(pgConfig(cfg))
}

func pgConfig(cfg Config) pgstorage.Config {
	return pgstorage.Config{
		Name:     cfg.Name,
		User:     cfg.User,
		Password: cfg.Password,
		Host:     cfg.Host,
		Port:     cfg.Port,
		MaxConns: cfg.MaxConns,
	}
}

package redisstorage

import (
	"context"
	"time"

	"github.com/InvArch/invarch-bridge-service/models"
	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps the token prices and the user preferences.
type RedisStorage interface {
	SetPrices(ctx context.Context, prices []*models.TokenPrice) error
	GetPrices(ctx context.Context) ([]*models.TokenPrice, error)
	SetPreferences(ctx context.Context, prefs *models.Preferences) error
	GetPreferences(ctx context.Context) (*models.Preferences, error)
	Close() error
}

// RedisClient is the subset of the go-redis API used by the storage.
type RedisClient interface {
	Ping(ctx context.Context) *redis.StatusCmd
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Close() error
}

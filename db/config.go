package db

import "github.com/InvArch/invarch-bridge-service/redisstorage"

// Config selects and configures the key-value state store.
type Config struct {
	// Database type, "postgres" or "redis"
	Database string `mapstructure:"Database"`

	// Database name
	Name string `mapstructure:"Name"`

	// User name
	User string `mapstructure:"User"`

	// Password of the user
	Password string `mapstructure:"Password"`

	// Host address
	Host string `mapstructure:"Host"`

	// Port Number
	Port string `mapstructure:"Port"`

	// MaxConns is the maximum number of connections in the pool.
	MaxConns int `mapstructure:"MaxConns"`

	// Redis is used when Database is "redis"
	Redis redisstorage.Config `mapstructure:"Redis"`
}

package localcache

import (
	"github.com/InvArch/invarch-bridge-service/config/types"
)

// Config is the configuration of the asset cache.
type Config struct {
	RefreshInterval types.Duration `mapstructure:"RefreshInterval"`
	MaxRetries      int            `mapstructure:"MaxRetries"`
}

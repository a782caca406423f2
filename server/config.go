package server

import "github.com/InvArch/invarch-bridge-service/config/types"

// Config struct
type Config struct {
	// HTTPPort is TCP port to listen by the HTTP/WebSocket API
	HTTPPort string `mapstructure:"HTTPPort"`

	// ReadTimeout bounds reading a request
	ReadTimeout types.Duration `mapstructure:"ReadTimeout"`

	// OperationTTL is how long a finished operation stays queryable
	OperationTTL types.Duration `mapstructure:"OperationTTL"`

	// IPBlocklist rejects requests from these client IPs
	IPBlocklist []string `mapstructure:"IPBlockList"`
}

package messagepush

import "github.com/InvArch/invarch-bridge-service/config/types"

// Config is the config for the Kafka producer
type Config struct {
	Enabled bool `mapstructure:"Enabled"`

	// UseFakeProducer keeps the messages in memory instead of sending them,
	// for environments without a broker
	UseFakeProducer bool `mapstructure:"UseFakeProducer"`

	// Brokers is the list of address of the kafka brokers
	Brokers []string `mapstructure:"Brokers"`

	// Topic is the default topic name to send message to
	Topic   string `mapstructure:"Topic"`
	PushKey string `mapstructure:"PushKey"`

	// Username and Password are used for SASL_SSL authentication
	Username string `mapstructure:"Username"`
	Password string `mapstructure:"Password"`

	// RootCAPath points to the CA cert used for authentication
	RootCAPath string `mapstructure:"RootCAPath"`

	// DedupWindow drops a notification whose message was already shown
	// within the window
	DedupWindow types.Duration `mapstructure:"DedupWindow"`
}

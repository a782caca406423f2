package config

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"

	"github.com/InvArch/invarch-bridge-service/bridgectrl"
	"github.com/InvArch/invarch-bridge-service/chainman"
	"github.com/InvArch/invarch-bridge-service/coinmiddleware"
	"github.com/InvArch/invarch-bridge-service/db"
	"github.com/InvArch/invarch-bridge-service/localcache"
	"github.com/InvArch/invarch-bridge-service/log"
	"github.com/InvArch/invarch-bridge-service/messagepush"
	"github.com/InvArch/invarch-bridge-service/metrics"
	"github.com/InvArch/invarch-bridge-service/server"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const envPrefix = "INVARCH_BRIDGE"

// Config struct
type Config struct {
	Log                 log.Config
	StateDB             db.Config
	Chain               chainman.Config
	BridgeController    bridgectrl.Config
	AssetCache          localcache.Config
	BridgeServer        server.Config
	MessagePushProducer messagepush.Config
	CoinKafkaConsumer   coinmiddleware.Config
	Metrics             metrics.Config
	NetworkConfig
}

// Load loads the configuration: the defaults, then the optional file, then
// the INVARCH_BRIDGE_ prefixed environment. The network is taken either from
// the [NetworkConfig] section of the file or from a preset name, not both.
func Load(configFilePath string, network string) (*Config, error) {
	var cfg Config
	v := viper.New()
	v.SetConfigType("toml")

	err := v.ReadConfig(bytes.NewBuffer([]byte(DefaultValues)))
	if err != nil {
		return nil, err
	}
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	err = v.Unmarshal(&cfg, decodeHook)
	if err != nil {
		return nil, err
	}
	if configFilePath != "" {
		dirName, fileName := filepath.Split(configFilePath)

		fileExtension := strings.TrimPrefix(filepath.Ext(fileName), ".")
		fileNameWithoutExtension := strings.TrimSuffix(fileName, "."+fileExtension)

		v.AddConfigPath(dirName)
		v.SetConfigName(fileNameWithoutExtension)
		v.SetConfigType(fileExtension)
	}
	v.AutomaticEnv()
	replacer := strings.NewReplacer(".", "_")
	v.SetEnvKeyReplacer(replacer)
	v.SetEnvPrefix(envPrefix)
	err = v.ReadInConfig()
	if err != nil {
		_, ok := err.(viper.ConfigFileNotFoundError)
		if ok {
			log.Infof("config file not found")
		} else {
			log.Infof("error reading config file: %v", err)
			return nil, err
		}
	}

	err = v.Unmarshal(&cfg, decodeHook)
	if err != nil {
		return nil, err
	}

	if v.IsSet("NetworkConfig") && network != "" {
		return nil, errors.New("Network details are provided in the config file (the [NetworkConfig] section) and as a flag (the --network or -n). Configure it only once and try again please.")
	}
	if !v.IsSet("NetworkConfig") && network == "" {
		return nil, errors.New("Network details are not provided. Please configure the [NetworkConfig] section in your config file, or provide a --network flag.")
	}
	if !v.IsSet("NetworkConfig") && network != "" {
		if err := cfg.loadNetworkConfig(network); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

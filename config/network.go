package config

import (
	"fmt"
	"math/big"

	"github.com/InvArch/invarch-bridge-service/bridgectrl"
	"github.com/InvArch/invarch-bridge-service/log"
	"github.com/InvArch/invarch-bridge-service/models"
)

//NetworkConfig is the configuration struct for the different environments
type NetworkConfig struct {
	HomeParaID           uint32
	AssetHubParaID       uint32
	AssetsPalletInstance uint8

	// The home chain's own currency, shown as the native registry entry
	NativeSymbol   string
	NativeName     string
	NativeDecimals uint8
	// NativeExistentialDeposit in minor units
	NativeExistentialDeposit string
}

const (
	invarch   = "invarch"
	tinkernet = "tinkernet"
	local     = "local"
)

//nolint:gomnd
var (
	invarchConfig = NetworkConfig{
		HomeParaID:               3340,
		AssetHubParaID:           1000,
		AssetsPalletInstance:     50,
		NativeSymbol:             "VARCH",
		NativeName:               "InvArch",
		NativeDecimals:           12,
		NativeExistentialDeposit: "1000000000",
	}
	tinkernetConfig = NetworkConfig{
		HomeParaID:               2125,
		AssetHubParaID:           1000,
		AssetsPalletInstance:     50,
		NativeSymbol:             "TNKR",
		NativeName:               "Tinkernet",
		NativeDecimals:           12,
		NativeExistentialDeposit: "1000000000",
	}
	localConfig = NetworkConfig{
		HomeParaID:               3340,
		AssetHubParaID:           1000,
		AssetsPalletInstance:     50,
		NativeSymbol:             "VARCH",
		NativeName:               "InvArch Local",
		NativeDecimals:           12,
		NativeExistentialDeposit: "1000000000",
	}
)

func (cfg *Config) loadNetworkConfig(network string) error {
	switch network {
	case invarch:
		log.Debug("InvArch network selected")
		cfg.NetworkConfig = invarchConfig
	case tinkernet:
		log.Debug("Tinkernet network selected")
		cfg.NetworkConfig = tinkernetConfig
	case local:
		log.Debug("Local network selected")
		cfg.NetworkConfig = localConfig
	default:
		return fmt.Errorf("unknown network %q, expected one of %s, %s, %s", network, invarch, tinkernet, local)
	}
	return nil
}

// Chains returns the chain identifiers of the network.
func (n NetworkConfig) Chains() bridgectrl.Chains {
	return bridgectrl.Chains{
		HomeParaID:           n.HomeParaID,
		AssetHubParaID:       n.AssetHubParaID,
		AssetsPalletInstance: n.AssetsPalletInstance,
	}
}

// NativeAsset returns the registry entry of the home chain's currency.
func (n NetworkConfig) NativeAsset() (*models.AssetDescriptor, error) {
	ed := big.NewInt(0)
	if n.NativeExistentialDeposit != "" {
		var ok bool
		ed, ok = new(big.Int).SetString(n.NativeExistentialDeposit, 10) //nolint:gomnd
		if !ok || ed.Sign() < 0 {
			return nil, fmt.Errorf("invalid native existential deposit %q", n.NativeExistentialDeposit)
		}
	}
	return &models.AssetDescriptor{
		ID:                 models.NativeAssetID,
		Symbol:             n.NativeSymbol,
		Name:               n.NativeName,
		Decimals:           n.NativeDecimals,
		ExistentialDeposit: ed,
		Native:             true,
	}, nil
}

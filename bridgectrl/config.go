package bridgectrl

import "github.com/InvArch/invarch-bridge-service/amount"

// Config is the bridge controller config
type Config struct {
	// Rounding used to scale decimal amounts into minor units
	Rounding amount.RoundingMode `mapstructure:"Rounding"`
}

// Chains are the chain identifiers the bridge is built around.
type Chains struct {
	// HomeParaID is the parachain id of the home chain
	HomeParaID uint32
	// AssetHubParaID is the parachain id of the asset hub
	AssetHubParaID uint32
	// AssetsPalletInstance is the index of the asset hub assets pallet
	AssetsPalletInstance uint8
}

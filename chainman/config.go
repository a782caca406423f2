package chainman

import "github.com/InvArch/invarch-bridge-service/config/types"

// Config is the configuration of the chain clients.
type Config struct {
	// HomeURL is the websocket endpoint of the home parachain.
	HomeURL string `mapstructure:"HomeURL"`
	// AssetHubURL is the websocket endpoint of the asset hub parachain.
	AssetHubURL string `mapstructure:"AssetHubURL"`
	// SignerSeed is a mnemonic, a 0x seed or a dev URI like //Alice.
	SignerSeed string `mapstructure:"SignerSeed"`
	// SS58Prefix is used when rendering the signer address.
	SS58Prefix uint16 `mapstructure:"SS58Prefix"`
	// FinalizationTimeout stops watching a submission that is not finalized
	// in time. Zero disables it.
	FinalizationTimeout types.Duration `mapstructure:"FinalizationTimeout"`
}

package models

import (
	"math/big"

	"github.com/InvArch/invarch-bridge-service/xcm"
)

// NativeAssetID is the registry id of the home chain's native currency.
const NativeAssetID uint32 = 0

// AssetDescriptor is one fungible asset known to the home chain's asset
// registry, or the synthetic native currency entry.
type AssetDescriptor struct {
	ID                 uint32                 `json:"id"`
	Symbol             string                 `json:"symbol"`
	Name               string                 `json:"name"`
	Decimals           uint8                  `json:"decimals"`
	ExistentialDeposit *big.Int               `json:"existentialDeposit"`
	Location           *xcm.VersionedLocation `json:"location,omitempty"`
	Native             bool                   `json:"native"`
	Additional         *big.Int               `json:"additional,omitempty"`
}

// IsNative reports whether the descriptor is the native currency entry.
func (a *AssetDescriptor) IsNative() bool {
	return a != nil && a.Native
}

// TokenPrice is the latest USD price of a token symbol.
type TokenPrice struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
	Time   int64   `json:"time"`
}

// Preferences is what the portal remembers between sessions.
type Preferences struct {
	SelectedAccount string  `json:"selectedAccount"`
	SelectedDaoID   *uint32 `json:"selectedDaoId,omitempty"`
}

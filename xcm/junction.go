package xcm

import (
	"encoding/json"
	"fmt"
)

// Junction is one typed element of an interior path. The set of
// implementations is closed: Parachain, PalletInstance, GeneralIndex,
// AccountID32, AccountKey20, GlobalConsensus and OtherJunction.
type Junction interface {
	junctionType() string
}

// Parachain identifies a parachain by id.
type Parachain uint32

// PalletInstance identifies a pallet by its index in the runtime.
type PalletInstance uint8

// GeneralIndex is a numeric index, used by the assets pallet as asset id.
type GeneralIndex uint64

// AccountID32 is a 32 byte account, optionally qualified by a network.
type AccountID32 struct {
	Network *NetworkID
	ID      [32]byte
}

// AccountKey20 is a 20 byte (ethereum style) account key.
type AccountKey20 struct {
	Network *NetworkID
	Key     [20]byte
}

// GlobalConsensus names a consensus system.
type GlobalConsensus NetworkID

// OtherJunction carries a junction this package does not interpret.
type OtherJunction struct {
	Type  string
	Value json.RawMessage
}

func (Parachain) junctionType() string       { return "Parachain" }
func (PalletInstance) junctionType() string  { return "PalletInstance" }
func (GeneralIndex) junctionType() string    { return "GeneralIndex" }
func (AccountID32) junctionType() string     { return "AccountId32" }
func (AccountKey20) junctionType() string    { return "AccountKey20" }
func (GlobalConsensus) junctionType() string { return "GlobalConsensus" }
func (j OtherJunction) junctionType() string { return j.Type }

// NetworkID is a named consensus network ("Polkadot", "Kusama", ...).
type NetworkID string

const (
	NetworkPolkadot NetworkID = "Polkadot"
	NetworkKusama   NetworkID = "Kusama"
	NetworkWestend  NetworkID = "Westend"
	NetworkRococo   NetworkID = "Rococo"
)

var networkScaleIndex = map[NetworkID]byte{
	NetworkPolkadot: 2,
	NetworkKusama:   3,
	NetworkWestend:  4,
	NetworkRococo:   5,
}

func networkFromScaleIndex(b byte) (NetworkID, error) {
	for n, idx := range networkScaleIndex {
		if idx == b {
			return n, nil
		}
	}
	return "", fmt.Errorf("unsupported network id variant %d", b)
}

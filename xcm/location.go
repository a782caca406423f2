package xcm

import (
	"math/big"
)

// Location is a relative path to a consensus system: a number of parent hops
// followed by an interior path.
type Location struct {
	Parents  uint8
	Interior Junctions
}

// VersionedLocation is a Location tagged with its XCM version.
type VersionedLocation struct {
	Version  Version
	Location Location
}

// NewLocation builds a location, panicking on more than MaxJunctions
// junctions. Only used with literal junction lists.
func NewLocation(parents uint8, items ...Junction) Location {
	interior, err := NewJunctions(items...)
	if err != nil {
		panic(err)
	}
	return Location{Parents: parents, Interior: interior}
}

// V4Location wraps a location in the V4 version tag.
func V4Location(loc Location) VersionedLocation {
	return VersionedLocation{Version: V4, Location: loc}
}

// ParachainDestination is the location of a sibling parachain seen from a
// parachain: {parents: 1, interior: X1[Parachain(paraID)]}.
func ParachainDestination(paraID uint32) VersionedLocation {
	return V4Location(NewLocation(1, Parachain(paraID)))
}

// AccountBeneficiary is the location of a local 32 byte account:
// {parents: 0, interior: X1[AccountId32(id)]}.
func AccountBeneficiary(id [32]byte) VersionedLocation {
	return V4Location(NewLocation(0, AccountID32{ID: id}))
}

// Asset is a fungible amount of the asset identified by ID.
type Asset struct {
	ID     Location
	Amount *big.Int
}

// Assets is a V4 list of assets.
type Assets []Asset

// FungibleAsset builds a single element asset list.
func FungibleAsset(id Location, amount *big.Int) Assets {
	return Assets{{ID: id, Amount: new(big.Int).Set(amount)}}
}

// WeightLimit bounds the weight purchased for remote execution.
type WeightLimit struct {
	Unlimited bool
	RefTime   uint64
	ProofSize uint64
}

// Unlimited lets the destination charge whatever weight the message needs.
func Unlimited() WeightLimit {
	return WeightLimit{Unlimited: true}
}

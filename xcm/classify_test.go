package xcm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const assetHub = uint32(1000)

func versioned(v Version, parents uint8, items ...Junction) *VersionedLocation {
	return &VersionedLocation{Version: v, Location: NewLocation(parents, items...)}
}

func TestIsNativeToken(t *testing.T) {
	cases := []struct {
		name     string
		loc      *VersionedLocation
		expected bool
	}{
		{"nil location", nil, false},
		{"v3 here", versioned(V3, 1), true},
		{"v4 here", versioned(V4, 1), true},
		{"v4 here no parents", versioned(V4, 0), true},
		{"v2 here", versioned(V2, 1), false},
		{"v4 parachain", versioned(V4, 1, Parachain(1000)), false},
		{"v4 unsupported", &VersionedLocation{Version: V4, Location: Location{Parents: 1, Interior: Unsupported{Type: "X9"}}}, false},
		{"nil interior", &VersionedLocation{Version: V4}, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, IsNativeToken(c.loc), c.name)
	}
}

func TestIsAssetFromAssetHub(t *testing.T) {
	cases := []struct {
		name     string
		loc      *VersionedLocation
		expected bool
	}{
		{"nil location", nil, false},
		{"x1 asset hub", versioned(V4, 1, Parachain(1000)), true},
		{"x1 other parachain", versioned(V4, 1, Parachain(2000)), false},
		{"x1 wrong junction", versioned(V4, 1, GeneralIndex(1000)), false},
		{"x3 asset hub", versioned(V3, 1, Parachain(1000), PalletInstance(50), GeneralIndex(1984)), true},
		{"v2 x3 asset hub", versioned(V2, 1, Parachain(1000), PalletInstance(50), GeneralIndex(1984)), true},
		{"x2 parachain second", versioned(V4, 1, PalletInstance(50), Parachain(1000)), true},
		{"x4 asset hub", versioned(V4, 1, GlobalConsensus(NetworkPolkadot), Parachain(1000), PalletInstance(50), GeneralIndex(1)), true},
		{"parents zero", versioned(V4, 0, Parachain(1000), PalletInstance(50), GeneralIndex(1984)), false},
		{"parents two", versioned(V4, 2, Parachain(1000)), false},
		{"here", versioned(V4, 1), false},
		{"x5", versioned(V4, 1, Parachain(1000), PalletInstance(50), GeneralIndex(1), GeneralIndex(2), GeneralIndex(3)), false},
		{"unsupported", &VersionedLocation{Version: V4, Location: Location{Parents: 1, Interior: Unsupported{Type: "X2"}}}, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, IsAssetFromAssetHub(c.loc, assetHub), c.name)
	}
}

func TestGetAssetHubID(t *testing.T) {
	cases := []struct {
		name  string
		loc   *VersionedLocation
		id    uint64
		found bool
	}{
		{"nil location", nil, 0, false},
		{"x1 general index", versioned(V4, 0, GeneralIndex(1984)), 1984, true},
		{"x1 parachain", versioned(V4, 1, Parachain(1000)), 0, false},
		{"x2 pallet and index", versioned(V4, 0, PalletInstance(50), GeneralIndex(1984)), 1984, true},
		{"x3 first match", versioned(V3, 1, Parachain(1000), GeneralIndex(7), GeneralIndex(8)), 7, true},
		{"x4 no index", versioned(V4, 1, GlobalConsensus(NetworkKusama), Parachain(1000), PalletInstance(50), PalletInstance(51)), 0, false},
		{"here", versioned(V4, 1), 0, false},
		{"x5", versioned(V4, 1, Parachain(1000), PalletInstance(50), GeneralIndex(1), GeneralIndex(2), GeneralIndex(3)), 0, false},
	}
	for _, c := range cases {
		id, found := GetAssetHubID(c.loc)
		assert.Equal(t, c.found, found, c.name)
		assert.Equal(t, c.id, id, c.name)
	}
}

func TestCreateAssetReference(t *testing.T) {
	native := versioned(V4, 1)
	for _, id := range []uint64{0, 1, 1984} {
		ref := CreateAssetReference(native, id, DefaultAssetsPalletInstance)
		assert.Equal(t, uint8(1), ref.Parents)
		assert.Equal(t, Here{}, ref.Interior)
	}

	usdt := versioned(V4, 1, Parachain(1000), PalletInstance(50), GeneralIndex(1984))
	first := CreateAssetReference(usdt, 1984, DefaultAssetsPalletInstance)
	second := CreateAssetReference(usdt, 1984, DefaultAssetsPalletInstance)
	assert.Equal(t, first, second)
	assert.Equal(t, Location{Parents: 0, Interior: X2{PalletInstance(50), GeneralIndex(1984)}}, first)

	// a different pallet instance is honoured
	ref := CreateAssetReference(usdt, 1, 51)
	assert.Equal(t, X2{PalletInstance(51), GeneralIndex(1)}, ref.Interior)

	// v2 here is not native, so it is addressed by id
	ref = CreateAssetReference(versioned(V2, 1), 3, DefaultAssetsPalletInstance)
	assert.Equal(t, uint8(0), ref.Parents)
}

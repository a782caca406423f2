package xcm

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/InvArch/invarch-bridge-service/gerror"
	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, v interface{}) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, scale.NewEncoder(&buf).Encode(v))
	return buf.Bytes()
}

func TestEncode(t *testing.T) {
	var alice [32]byte
	copy(alice[:], hexutil.MustDecode("0xd43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"))

	cases := []struct {
		name     string
		value    interface{}
		expected string
	}{
		{"home chain destination", ParachainDestination(3340), "0x040101003134"},
		{"asset hub destination", ParachainDestination(1000), "0x04010100a10f"},
		{"native reference", NativeAssetReference(), "0x0100"},
		{"pallet asset reference", CreateAssetReference(nil, 1984, DefaultAssetsPalletInstance), "0x0002043205011f"},
		{"native assets", FungibleAsset(NativeAssetReference(), big.NewInt(1_000_000)), "0x040401000002093d00"},
		{"unlimited weight", Unlimited(), "0x00"},
		{"limited weight", WeightLimit{RefTime: 1, ProofSize: 2}, "0x010408"},
		{"beneficiary", AccountBeneficiary(alice), "0x0400010100" + hexutil.Encode(alice[:])[2:]},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, hexutil.Encode(encode(t, c.value)), c.name)
	}
}

func TestEncodeRejects(t *testing.T) {
	var buf bytes.Buffer
	err := scale.NewEncoder(&buf).Encode(VersionedLocation{Version: V2, Location: NativeAssetReference()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, gerror.ErrUnsupportedVersion))

	buf.Reset()
	loc := Location{Parents: 1, Interior: Unsupported{Type: "X9"}}
	err = scale.NewEncoder(&buf).Encode(loc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gerror.ErrUnsupportedLocation))

	buf.Reset()
	err = scale.NewEncoder(&buf).Encode(NewLocation(0, OtherJunction{Type: "OnlyChild"}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, gerror.ErrUnsupportedLocation))
}

func TestDecodeRoundTrip(t *testing.T) {
	network := NetworkKusama
	locations := []VersionedLocation{
		ParachainDestination(3340),
		V4Location(NativeAssetReference()),
		{Version: V3, Location: NewLocation(1, Parachain(1000), PalletInstance(50), GeneralIndex(1984))},
		V4Location(NewLocation(2, GlobalConsensus(NetworkPolkadot), Parachain(1000), AccountKey20{Network: &network, Key: [20]byte{1}})),
		V4Location(NewLocation(0, AccountID32{ID: [32]byte{0xaa}})),
	}
	for _, loc := range locations {
		var decoded VersionedLocation
		err := scale.NewDecoder(bytes.NewReader(encode(t, loc))).Decode(&decoded)
		require.NoError(t, err)
		assert.Equal(t, loc, decoded)
	}
}

func TestDecodeV2(t *testing.T) {
	// V2 {parents: 1, X2[Parachain(1000), AccountId32{network: Any, id}]}
	raw := append(hexutil.MustDecode("0x01010200a10f0100"), make([]byte, 32)...)
	var decoded VersionedLocation
	require.NoError(t, scale.NewDecoder(bytes.NewReader(raw)).Decode(&decoded))
	assert.Equal(t, V2, decoded.Version)
	assert.Equal(t, NewLocation(1, Parachain(1000), AccountID32{}), decoded.Location)
	assert.True(t, IsAssetFromAssetHub(&decoded, 1000))
	assert.False(t, IsNativeToken(&decoded))
}

func TestDecodeUnknownVersion(t *testing.T) {
	var decoded VersionedLocation
	err := scale.NewDecoder(bytes.NewReader([]byte{0x00, 0x01, 0x00})).Decode(&decoded)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gerror.ErrUnsupportedVersion))
}

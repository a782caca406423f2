package xcm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalVersionedLocation(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected VersionedLocation
	}{
		{
			"v4 here",
			`{"type":"V4","value":{"parents":1,"interior":{"type":"Here"}}}`,
			VersionedLocation{Version: V4, Location: Location{Parents: 1, Interior: Here{}}},
		},
		{
			"v3 x1 bare junction",
			`{"type":"V3","value":{"parents":1,"interior":{"type":"X1","value":{"type":"Parachain","value":1000}}}}`,
			VersionedLocation{Version: V3, Location: Location{Parents: 1, Interior: X1{Parachain(1000)}}},
		},
		{
			"v4 x1 array",
			`{"type":"V4","value":{"parents":1,"interior":{"type":"X1","value":[{"type":"Parachain","value":1000}]}}}`,
			VersionedLocation{Version: V4, Location: Location{Parents: 1, Interior: X1{Parachain(1000)}}},
		},
		{
			"x3 asset hub asset",
			`{"type":"V4","value":{"parents":1,"interior":{"type":"X3","value":[` +
				`{"type":"Parachain","value":1000},{"type":"PalletInstance","value":50},{"type":"GeneralIndex","value":"1984"}]}}}`,
			VersionedLocation{Version: V4, Location: NewLocation(1, Parachain(1000), PalletInstance(50), GeneralIndex(1984))},
		},
		{
			"general index as number",
			`{"type":"V3","value":{"parents":0,"interior":{"type":"X1","value":{"type":"GeneralIndex","value":7}}}}`,
			VersionedLocation{Version: V3, Location: NewLocation(0, GeneralIndex(7))},
		},
	}
	for _, c := range cases {
		var loc VersionedLocation
		require.NoError(t, json.Unmarshal([]byte(c.input), &loc), c.name)
		assert.Equal(t, c.expected, loc, c.name)
	}
}

func TestUnmarshalUnsupportedInterior(t *testing.T) {
	cases := []struct {
		name  string
		input string
		tag   string
	}{
		{"unknown tag", `{"parents":1,"interior":{"type":"X9","value":[]}}`, "X9"},
		{"wrong arity", `{"parents":1,"interior":{"type":"X2","value":[{"type":"Parachain","value":1000}]}}`, "X2"},
		{"bad junction payload", `{"parents":1,"interior":{"type":"X1","value":{"type":"Parachain","value":"abc"}}}`, "X1"},
	}
	for _, c := range cases {
		var loc Location
		require.NoError(t, json.Unmarshal([]byte(c.input), &loc), c.name)
		unsupported, ok := loc.Interior.(Unsupported)
		require.True(t, ok, c.name)
		assert.Equal(t, c.tag, unsupported.Type, c.name)
		assert.Equal(t, c.tag, InteriorType(loc.Interior), c.name)
	}
}

func TestUnmarshalUnknownVersion(t *testing.T) {
	var loc VersionedLocation
	err := json.Unmarshal([]byte(`{"type":"V1","value":{"parents":0,"interior":{"type":"Here"}}}`), &loc)
	require.Error(t, err)
}

func TestMarshalLocation(t *testing.T) {
	network := NetworkPolkadot
	id := [32]byte{0xd4, 0x35}
	loc := V4Location(NewLocation(1,
		GlobalConsensus(NetworkKusama),
		Parachain(1000),
		AccountID32{Network: &network, ID: id},
		GeneralIndex(1984),
	))

	b, err := json.Marshal(loc)
	require.NoError(t, err)
	assert.Contains(t, string(b), `{"type":"GeneralIndex","value":"1984"}`)
	assert.Contains(t, string(b), `"type":"X4"`)

	var decoded VersionedLocation
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, loc, decoded)

	// an unrecognised junction survives untouched
	in := `{"type":"V4","value":{"parents":0,"interior":{"type":"X1","value":[{"type":"OnlyChild"}]}}}`
	require.NoError(t, json.Unmarshal([]byte(in), &decoded))
	other, ok := decoded.Location.Interior.(X1)
	require.True(t, ok)
	assert.Equal(t, "OnlyChild", other[0].junctionType())
}

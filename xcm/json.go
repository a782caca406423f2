package xcm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// The JSON shapes follow the chain-API client used by the portal:
// {"type": "<tag>", "value": <payload>}.

type tagged struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

type locationJSON struct {
	Parents  uint8           `json:"parents"`
	Interior json.RawMessage `json:"interior"`
}

type accountID32JSON struct {
	Network *NetworkID `json:"network"`
	ID      string     `json:"id"`
}

type accountKey20JSON struct {
	Network *NetworkID `json:"network"`
	Key     string     `json:"key"`
}

// MarshalJSON implements json.Marshaler.
func (v VersionedLocation) MarshalJSON() ([]byte, error) {
	value, err := json.Marshal(v.Location)
	if err != nil {
		return nil, err
	}
	return json.Marshal(tagged{Type: v.Version.String(), Value: value})
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *VersionedLocation) UnmarshalJSON(data []byte) error {
	var t tagged
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	version, err := ParseVersion(t.Type)
	if err != nil {
		return err
	}
	var loc Location
	if err := json.Unmarshal(t.Value, &loc); err != nil {
		return err
	}
	v.Version = version
	v.Location = loc
	return nil
}

// MarshalJSON implements json.Marshaler.
func (l Location) MarshalJSON() ([]byte, error) {
	interior, err := marshalJunctions(l.Interior)
	if err != nil {
		return nil, err
	}
	return json.Marshal(locationJSON{Parents: l.Parents, Interior: interior})
}

// UnmarshalJSON implements json.Unmarshaler. Interior shapes that cannot be
// recognised are kept as Unsupported instead of failing the whole document.
func (l *Location) UnmarshalJSON(data []byte) error {
	var raw locationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	l.Parents = raw.Parents
	l.Interior = unmarshalJunctions(raw.Interior)
	return nil
}

func marshalJunctions(j Junctions) (json.RawMessage, error) {
	switch in := j.(type) {
	case nil:
		return json.Marshal(tagged{Type: "Here"})
	case Here:
		return json.Marshal(tagged{Type: "Here"})
	case Unsupported:
		return json.Marshal(tagged{Type: in.Type, Value: in.Value})
	default:
		items := make([]json.RawMessage, 0, len(in.Items()))
		for _, item := range in.Items() {
			b, err := marshalJunction(item)
			if err != nil {
				return nil, err
			}
			items = append(items, b)
		}
		value, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		return json.Marshal(tagged{Type: in.interiorType(), Value: value})
	}
}

func unmarshalJunctions(data json.RawMessage) Junctions {
	var t tagged
	if err := json.Unmarshal(data, &t); err != nil {
		return Unsupported{Value: data}
	}
	unsupported := Unsupported{Type: t.Type, Value: t.Value}
	if t.Type == "Here" {
		return Here{}
	}
	arity, err := parseArity(t.Type)
	if err != nil {
		return unsupported
	}

	var raws []json.RawMessage
	trimmed := bytes.TrimSpace(t.Value)
	if arity == 1 && len(trimmed) > 0 && trimmed[0] == '{' {
		// V3 encodes X1 as a bare junction, V4 as a one element list
		raws = []json.RawMessage{trimmed}
	} else if err := json.Unmarshal(t.Value, &raws); err != nil {
		return unsupported
	}
	if len(raws) != arity {
		return unsupported
	}

	items := make([]Junction, 0, arity)
	for _, raw := range raws {
		item, err := unmarshalJunction(raw)
		if err != nil {
			return unsupported
		}
		items = append(items, item)
	}
	interior, err := NewJunctions(items...)
	if err != nil {
		return unsupported
	}
	return interior
}

func parseArity(tag string) (int, error) {
	if len(tag) != 2 || tag[0] != 'X' {
		return 0, fmt.Errorf("unknown interior %q", tag)
	}
	n, err := strconv.Atoi(tag[1:])
	if err != nil || n < 1 || n > MaxJunctions {
		return 0, fmt.Errorf("unknown interior %q", tag)
	}
	return n, nil
}

func marshalJunction(j Junction) (json.RawMessage, error) {
	var value interface{}
	switch v := j.(type) {
	case Parachain:
		value = uint32(v)
	case PalletInstance:
		value = uint8(v)
	case GeneralIndex:
		value = strconv.FormatUint(uint64(v), 10)
	case AccountID32:
		value = accountID32JSON{Network: v.Network, ID: hexutil.Encode(v.ID[:])}
	case AccountKey20:
		value = accountKey20JSON{Network: v.Network, Key: hexutil.Encode(v.Key[:])}
	case GlobalConsensus:
		value = tagged{Type: string(v)}
	case OtherJunction:
		return json.Marshal(tagged{Type: v.Type, Value: v.Value})
	default:
		return nil, fmt.Errorf("unknown junction %T", j)
	}
	b, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(tagged{Type: j.junctionType(), Value: b})
}

func unmarshalJunction(data json.RawMessage) (Junction, error) {
	var t tagged
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	switch t.Type {
	case "Parachain":
		var id uint32
		if err := json.Unmarshal(t.Value, &id); err != nil {
			return nil, err
		}
		return Parachain(id), nil
	case "PalletInstance":
		var idx uint8
		if err := json.Unmarshal(t.Value, &idx); err != nil {
			return nil, err
		}
		return PalletInstance(idx), nil
	case "GeneralIndex":
		idx, err := unmarshalUint64(t.Value)
		if err != nil {
			return nil, err
		}
		return GeneralIndex(idx), nil
	case "AccountId32":
		var v accountID32JSON
		if err := json.Unmarshal(t.Value, &v); err != nil {
			return nil, err
		}
		j := AccountID32{Network: v.Network}
		if err := decodeFixedHex(v.ID, j.ID[:]); err != nil {
			return nil, err
		}
		return j, nil
	case "AccountKey20":
		var v accountKey20JSON
		if err := json.Unmarshal(t.Value, &v); err != nil {
			return nil, err
		}
		j := AccountKey20{Network: v.Network}
		if err := decodeFixedHex(v.Key, j.Key[:]); err != nil {
			return nil, err
		}
		return j, nil
	case "GlobalConsensus":
		var n tagged
		if err := json.Unmarshal(t.Value, &n); err != nil {
			return nil, err
		}
		return GlobalConsensus(n.Type), nil
	}
	return OtherJunction{Type: t.Type, Value: t.Value}, nil
}

// MarshalJSON implements json.Marshaler.
func (n NetworkID) MarshalJSON() ([]byte, error) {
	return json.Marshal(tagged{Type: string(n)})
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NetworkID) UnmarshalJSON(data []byte) error {
	var t tagged
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	*n = NetworkID(t.Type)
	return nil
}

// unmarshalUint64 accepts both JSON numbers and decimal strings, since u128
// values travel as strings.
func unmarshalUint64(data json.RawMessage) (uint64, error) {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return strconv.ParseUint(s, 10, 64)
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return 0, err
	}
	return strconv.ParseUint(n.String(), 10, 64)
}

func decodeFixedHex(s string, dst []byte) error {
	b, err := hexutil.Decode(s)
	if err != nil {
		return err
	}
	if len(b) != len(dst) {
		return fmt.Errorf("expected %d bytes, got %d", len(dst), len(b))
	}
	copy(dst, b)
	return nil
}

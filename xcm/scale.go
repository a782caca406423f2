package xcm

import (
	"math/big"

	"github.com/InvArch/invarch-bridge-service/gerror"
	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/pkg/errors"
)

// Junction variant indexes. V2, V3 and V4 share the ones used here, except
// GlobalConsensus which does not exist in V2.
const (
	junctionParachain       = 0
	junctionAccountID32     = 1
	junctionAccountKey20    = 3
	junctionPalletInstance  = 4
	junctionGeneralIndex    = 5
	junctionGlobalConsensus = 9

	// V2 NetworkId variants
	v2NetworkAny      = 0
	v2NetworkPolkadot = 2
	v2NetworkKusama   = 3

	fungibleIndex   = 0
	weightUnlimited = 0
	weightLimited   = 1
	optionNone      = 0
	optionSome      = 1
)

// Encode implements scale.Encodeable. Only V3 and V4 can be encoded.
func (v VersionedLocation) Encode(encoder scale.Encoder) error {
	if v.Version != V3 && v.Version != V4 {
		return errors.Wrapf(gerror.ErrUnsupportedVersion, "cannot encode %s location", v.Version)
	}
	idx, err := v.Version.scaleIndex()
	if err != nil {
		return err
	}
	if err := encoder.PushByte(idx); err != nil {
		return err
	}
	return v.Location.Encode(encoder)
}

// Decode implements scale.Decodeable.
func (v *VersionedLocation) Decode(decoder scale.Decoder) error {
	b, err := decoder.ReadOneByte()
	if err != nil {
		return err
	}
	version, err := versionFromScaleIndex(b)
	if err != nil {
		return err
	}
	loc, err := decodeLocation(decoder, version)
	if err != nil {
		return err
	}
	v.Version = version
	v.Location = loc
	return nil
}

// Encode implements scale.Encodeable using the V3/V4 layout.
func (l Location) Encode(encoder scale.Encoder) error {
	if err := encoder.PushByte(l.Parents); err != nil {
		return err
	}
	switch in := l.Interior.(type) {
	case nil, Here:
		return encoder.PushByte(0)
	case Unsupported:
		return errors.Wrapf(gerror.ErrUnsupportedLocation, "cannot encode interior %q", in.Type)
	default:
		items := in.Items()
		if err := encoder.PushByte(byte(len(items))); err != nil {
			return err
		}
		for _, item := range items {
			if err := encodeJunction(encoder, item); err != nil {
				return err
			}
		}
		return nil
	}
}

func encodeJunction(encoder scale.Encoder, j Junction) error {
	switch v := j.(type) {
	case Parachain:
		if err := encoder.PushByte(junctionParachain); err != nil {
			return err
		}
		return encoder.Encode(types.NewUCompactFromUInt(uint64(v)))
	case AccountID32:
		if err := encoder.PushByte(junctionAccountID32); err != nil {
			return err
		}
		if err := encodeOptionalNetwork(encoder, v.Network); err != nil {
			return err
		}
		return encoder.Write(v.ID[:])
	case AccountKey20:
		if err := encoder.PushByte(junctionAccountKey20); err != nil {
			return err
		}
		if err := encodeOptionalNetwork(encoder, v.Network); err != nil {
			return err
		}
		return encoder.Write(v.Key[:])
	case PalletInstance:
		if err := encoder.PushByte(junctionPalletInstance); err != nil {
			return err
		}
		return encoder.PushByte(uint8(v))
	case GeneralIndex:
		if err := encoder.PushByte(junctionGeneralIndex); err != nil {
			return err
		}
		return encoder.Encode(types.NewUCompactFromUInt(uint64(v)))
	case GlobalConsensus:
		if err := encoder.PushByte(junctionGlobalConsensus); err != nil {
			return err
		}
		return encodeNetwork(encoder, NetworkID(v))
	}
	return errors.Wrapf(gerror.ErrUnsupportedLocation, "cannot encode junction %q", j.junctionType())
}

func encodeOptionalNetwork(encoder scale.Encoder, n *NetworkID) error {
	if n == nil {
		return encoder.PushByte(optionNone)
	}
	if err := encoder.PushByte(optionSome); err != nil {
		return err
	}
	return encodeNetwork(encoder, *n)
}

func encodeNetwork(encoder scale.Encoder, n NetworkID) error {
	idx, ok := networkScaleIndex[n]
	if !ok {
		return errors.Wrapf(gerror.ErrUnsupportedLocation, "cannot encode network %q", n)
	}
	return encoder.PushByte(idx)
}

// Decode implements scale.Decodeable using the V3/V4 layout.
func (l *Location) Decode(decoder scale.Decoder) error {
	loc, err := decodeLocation(decoder, V4)
	if err != nil {
		return err
	}
	*l = loc
	return nil
}

func decodeLocation(decoder scale.Decoder, version Version) (Location, error) {
	parents, err := decoder.ReadOneByte()
	if err != nil {
		return Location{}, err
	}
	n, err := decoder.ReadOneByte()
	if err != nil {
		return Location{}, err
	}
	if n > MaxJunctions {
		return Location{}, errors.Wrapf(gerror.ErrUnsupportedLocation, "interior variant %d", n)
	}
	items := make([]Junction, 0, n)
	for i := 0; i < int(n); i++ {
		j, err := decodeJunction(decoder, version)
		if err != nil {
			return Location{}, err
		}
		items = append(items, j)
	}
	interior, err := NewJunctions(items...)
	if err != nil {
		return Location{}, err
	}
	return Location{Parents: parents, Interior: interior}, nil
}

func decodeJunction(decoder scale.Decoder, version Version) (Junction, error) {
	idx, err := decoder.ReadOneByte()
	if err != nil {
		return nil, err
	}
	switch idx {
	case junctionParachain:
		v, err := decodeCompact(decoder)
		if err != nil {
			return nil, err
		}
		return Parachain(v.Uint64()), nil
	case junctionAccountID32:
		network, err := decodeJunctionNetwork(decoder, version)
		if err != nil {
			return nil, err
		}
		j := AccountID32{Network: network}
		if err := decoder.Read(j.ID[:]); err != nil {
			return nil, err
		}
		return j, nil
	case junctionAccountKey20:
		network, err := decodeJunctionNetwork(decoder, version)
		if err != nil {
			return nil, err
		}
		j := AccountKey20{Network: network}
		if err := decoder.Read(j.Key[:]); err != nil {
			return nil, err
		}
		return j, nil
	case junctionPalletInstance:
		b, err := decoder.ReadOneByte()
		if err != nil {
			return nil, err
		}
		return PalletInstance(b), nil
	case junctionGeneralIndex:
		v, err := decodeCompact(decoder)
		if err != nil {
			return nil, err
		}
		if !v.IsUint64() {
			return nil, errors.Wrapf(gerror.ErrUnsupportedLocation, "general index %s overflows u64", v.String())
		}
		return GeneralIndex(v.Uint64()), nil
	case junctionGlobalConsensus:
		if version == V2 {
			break
		}
		b, err := decoder.ReadOneByte()
		if err != nil {
			return nil, err
		}
		n, err := networkFromScaleIndex(b)
		if err != nil {
			return nil, errors.Wrap(gerror.ErrUnsupportedLocation, err.Error())
		}
		return GlobalConsensus(n), nil
	}
	return nil, errors.Wrapf(gerror.ErrUnsupportedLocation, "cannot decode %s junction variant %d", version, idx)
}

// decodeJunctionNetwork reads the network qualifier of an account junction:
// a plain NetworkId enum in V2, an Option<NetworkId> from V3 on.
func decodeJunctionNetwork(decoder scale.Decoder, version Version) (*NetworkID, error) {
	b, err := decoder.ReadOneByte()
	if err != nil {
		return nil, err
	}
	if version == V2 {
		var n NetworkID
		switch b {
		case v2NetworkAny:
			return nil, nil
		case v2NetworkPolkadot:
			n = NetworkPolkadot
		case v2NetworkKusama:
			n = NetworkKusama
		default:
			return nil, errors.Wrapf(gerror.ErrUnsupportedLocation, "v2 network variant %d", b)
		}
		return &n, nil
	}
	if b == optionNone {
		return nil, nil
	}
	nb, err := decoder.ReadOneByte()
	if err != nil {
		return nil, err
	}
	n, err := networkFromScaleIndex(nb)
	if err != nil {
		return nil, errors.Wrap(gerror.ErrUnsupportedLocation, err.Error())
	}
	return &n, nil
}

func decodeCompact(decoder scale.Decoder) (*big.Int, error) {
	var c types.UCompact
	if err := decoder.Decode(&c); err != nil {
		return nil, err
	}
	return (*big.Int)(&c), nil
}

// Encode implements scale.Encodeable as VersionedAssets::V4.
func (a Assets) Encode(encoder scale.Encoder) error {
	if err := encoder.PushByte(scaleIndexV4); err != nil {
		return err
	}
	if err := encoder.Encode(types.NewUCompactFromUInt(uint64(len(a)))); err != nil {
		return err
	}
	for _, asset := range a {
		if err := asset.ID.Encode(encoder); err != nil {
			return err
		}
		if err := encoder.PushByte(fungibleIndex); err != nil {
			return err
		}
		amount := asset.Amount
		if amount == nil {
			amount = new(big.Int)
		}
		if err := encoder.Encode(types.NewUCompact(amount)); err != nil {
			return err
		}
	}
	return nil
}

// Encode implements scale.Encodeable.
func (w WeightLimit) Encode(encoder scale.Encoder) error {
	if w.Unlimited {
		return encoder.PushByte(weightUnlimited)
	}
	if err := encoder.PushByte(weightLimited); err != nil {
		return err
	}
	if err := encoder.Encode(types.NewUCompactFromUInt(w.RefTime)); err != nil {
		return err
	}
	return encoder.Encode(types.NewUCompactFromUInt(w.ProofSize))
}

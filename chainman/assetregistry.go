package chainman

import (
	"context"
	"encoding/binary"
	"math"
	"math/big"

	"github.com/InvArch/invarch-bridge-service/log"
	"github.com/InvArch/invarch-bridge-service/models"
	"github.com/InvArch/invarch-bridge-service/xcm"
	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	"github.com/pkg/errors"
)

const (
	// twox64concat hash prefix of a map key
	twox64Len  = 8
	assetIDLen = 4
)

// AssetMetadata is the value of AssetRegistry.Metadata.
type AssetMetadata struct {
	Decimals           types.U32
	Name               types.Bytes
	Symbol             types.Bytes
	ExistentialDeposit types.U128
	Location           OptionalLocation
	Additional         types.U128
}

// OptionalLocation is an Option<VersionedLocation>.
type OptionalLocation struct {
	Location *xcm.VersionedLocation
}

// Decode implements scale.Decodeable.
func (o *OptionalLocation) Decode(decoder scale.Decoder) error {
	b, err := decoder.ReadOneByte()
	if err != nil {
		return err
	}
	switch b {
	case 0:
		o.Location = nil
		return nil
	case 1:
		var loc xcm.VersionedLocation
		if err := decoder.Decode(&loc); err != nil {
			return err
		}
		o.Location = &loc
		return nil
	}
	return errors.Errorf("invalid option byte %d", b)
}

// Encode implements scale.Encodeable.
func (o OptionalLocation) Encode(encoder scale.Encoder) error {
	if o.Location == nil {
		return encoder.PushByte(0)
	}
	if err := encoder.PushByte(1); err != nil {
		return err
	}
	return encoder.Encode(*o.Location)
}

// ReadAssetRegistry lists the assets of the home chain's asset registry.
// Entries that cannot be decoded, such as locations of an unsupported
// version, are skipped with a warning.
func ReadAssetRegistry(ctx context.Context, q Querier) ([]*models.AssetDescriptor, error) {
	entries, err := q.ReadStorageEntries(ctx, "AssetRegistry", "Metadata")
	if err != nil {
		return nil, err
	}
	assets := make([]*models.AssetDescriptor, 0, len(entries))
	for _, entry := range entries {
		if len(entry.KeyArgs) < twox64Len+assetIDLen {
			log.Warnf("asset registry key too short: %x", entry.KeyArgs)
			continue
		}
		id := binary.LittleEndian.Uint32(entry.KeyArgs[twox64Len : twox64Len+assetIDLen])

		var meta AssetMetadata
		if err := codec.Decode(entry.Value, &meta); err != nil {
			log.Warnf("skip asset %d: %v", id, err)
			continue
		}
		if meta.Decimals > math.MaxUint8 {
			log.Warnf("skip asset %d: %d decimals", id, meta.Decimals)
			continue
		}
		assets = append(assets, &models.AssetDescriptor{
			ID:                 id,
			Symbol:             string(meta.Symbol),
			Name:               string(meta.Name),
			Decimals:           uint8(meta.Decimals),
			ExistentialDeposit: u128(meta.ExistentialDeposit),
			Location:           meta.Location.Location,
			Additional:         u128(meta.Additional),
		})
	}
	return assets, nil
}

// AssetMetadataFrom builds the registry value of a descriptor.
func AssetMetadataFrom(a *models.AssetDescriptor) AssetMetadata {
	ed := a.ExistentialDeposit
	if ed == nil {
		ed = new(big.Int)
	}
	additional := a.Additional
	if additional == nil {
		additional = new(big.Int)
	}
	return AssetMetadata{
		Decimals:           types.NewU32(uint32(a.Decimals)),
		Name:               types.NewBytes([]byte(a.Name)),
		Symbol:             types.NewBytes([]byte(a.Symbol)),
		ExistentialDeposit: types.NewU128(*ed),
		Location:           OptionalLocation{Location: a.Location},
		Additional:         types.NewU128(*additional),
	}
}

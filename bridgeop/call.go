package bridgeop

import (
	"math/big"

	"github.com/InvArch/invarch-bridge-service/chainman"
	"github.com/InvArch/invarch-bridge-service/utils"
	"github.com/InvArch/invarch-bridge-service/xcm"
	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
)

// FeeAsset selects the currency INV4 charges the multisig call fees in.
type FeeAsset uint8

const (
	FeeAssetNative FeeAsset = 0
	FeeAssetRelay  FeeAsset = 1
)

// Encode implements scale.Encodeable
func (f FeeAsset) Encode(encoder scale.Encoder) error {
	return encoder.PushByte(byte(f))
}

// transferAssetsCall sends amount of asset to account on the parachain
// paraID, paying fees with the transferred asset and buying unlimited weight.
func transferAssetsCall(paraID uint32, account utils.AccountID, asset xcm.Location, amount *big.Int) chainman.Call {
	return chainman.Call{
		Pallet: "PolkadotXcm",
		Method: "transfer_assets",
		Args: []interface{}{
			xcm.ParachainDestination(paraID),
			xcm.AccountBeneficiary(account),
			xcm.FungibleAsset(asset, amount),
			types.NewU32(0),
			xcm.Unlimited(),
		},
	}
}

// operateMultisigCall dispatches call from the multisig account of daoID.
func operateMultisigCall(daoID uint32, call chainman.Call) chainman.Call {
	return chainman.Call{
		Pallet: "INV4",
		Method: "operate_multisig",
		Args: []interface{}{
			types.NewU32(daoID),
			types.NewOptionBytesEmpty(),
			FeeAssetNative,
			call,
		},
	}
}

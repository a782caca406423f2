package bridgeop

import (
	"context"
	"math/big"
	"strings"

	"github.com/InvArch/invarch-bridge-service/bridgectrl"
	"github.com/InvArch/invarch-bridge-service/chainman"
	"github.com/InvArch/invarch-bridge-service/gerror"
	"github.com/InvArch/invarch-bridge-service/utils"
	"github.com/InvArch/invarch-bridge-service/xcm"
	"github.com/pkg/errors"
)

// InParams are the inputs of a transfer from the asset hub to the home chain.
type InParams struct {
	Beneficiary   string
	AssetLocation *xcm.VersionedLocation
	// AssetID is the asset hub id, ignored for the relay native currency
	AssetID *uint64
	Amount  *big.Int

	OnStatusChange func(StatusChange)
	OnComplete     func()
}

// InOperation moves assets from the asset hub to the home chain. The
// extrinsic is signed and submitted on the asset hub.
type InOperation struct {
	tracker
	params InParams
	chains bridgectrl.Chains
	hub    chainman.Mutator
}

// NewInOperation creates an inbound operation submitting through hub.
func NewInOperation(params InParams, chains bridgectrl.Chains, hub chainman.Mutator, notifier Notifier) *InOperation {
	return &InOperation{
		tracker: newTracker(string(bridgectrl.DirectionIn), MsgBridgeInSuccess, notifier),
		params:  params,
		chains:  chains,
		hub:     hub,
	}
}

// Execute submits the transfer and follows it until the submission ends.
// Missing parameters are reported before anything is submitted.
func (op *InOperation) Execute(ctx context.Context) error {
	call, err := op.BuildCall()
	if err != nil {
		return err
	}
	return op.submit(ctx, op.hub, call, op.params.OnStatusChange, op.params.OnComplete)
}

// BuildCall builds the transfer extrinsic call.
func (op *InOperation) BuildCall() (chainman.Call, error) {
	p := op.params
	if strings.TrimSpace(p.Beneficiary) == "" {
		return chainman.Call{}, errors.Wrap(gerror.ErrMissingParams, "beneficiary")
	}
	if p.Amount == nil || p.Amount.Sign() <= 0 {
		return chainman.Call{}, errors.Wrap(gerror.ErrMissingParams, "amount")
	}
	if p.AssetLocation == nil {
		return chainman.Call{}, errors.Wrap(gerror.ErrMissingParams, "asset location")
	}
	native := xcm.IsNativeToken(p.AssetLocation)
	if !native && p.AssetID == nil {
		return chainman.Call{}, errors.Wrap(gerror.ErrMissingParams, "asset id")
	}
	if !op.IsLocationSupported() {
		return chainman.Call{}, errors.Wrap(gerror.ErrUnsupportedLocation, "asset is not bridgeable from the asset hub")
	}
	beneficiary, err := utils.ParseAccountID(p.Beneficiary)
	if err != nil {
		return chainman.Call{}, errors.Wrapf(gerror.ErrInvalidAccount, "beneficiary %s: %v", p.Beneficiary, err)
	}

	var assetID uint64
	if !native {
		assetID = *p.AssetID
	}
	ref := xcm.CreateAssetReference(p.AssetLocation, assetID, op.chains.AssetsPalletInstance)
	return transferAssetsCall(op.chains.HomeParaID, beneficiary, ref, p.Amount), nil
}

// Validate reports whether the parameters describe a supported transfer.
func (op *InOperation) Validate() bool {
	return bridgectrl.ValidateBridge(bridgectrl.InRequest{
		Beneficiary: op.params.Beneficiary,
		Location:    op.params.AssetLocation,
		AssetID:     op.params.AssetID,
		Amount:      op.params.Amount,
	}, op.chains.AssetHubParaID)
}

// ChainID returns the parachain the assets arrive on.
func (op *InOperation) ChainID() uint32 {
	return op.chains.HomeParaID
}

// IsLocationSupported reports whether the asset can be bridged in.
func (op *InOperation) IsLocationSupported() bool {
	return bridgectrl.IsBridgeSupportedIn(op.params.AssetLocation, op.chains.AssetHubParaID)
}

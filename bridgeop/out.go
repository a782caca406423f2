package bridgeop

import (
	"context"
	"math/big"
	"strings"

	"github.com/InvArch/invarch-bridge-service/bridgectrl"
	"github.com/InvArch/invarch-bridge-service/chainman"
	"github.com/InvArch/invarch-bridge-service/gerror"
	"github.com/InvArch/invarch-bridge-service/models"
	"github.com/InvArch/invarch-bridge-service/utils"
	"github.com/InvArch/invarch-bridge-service/xcm"
	"github.com/pkg/errors"
)

// OutParams are the inputs of a transfer from a DAO on the home chain to the
// asset hub.
type OutParams struct {
	Destination string
	Asset       *models.AssetDescriptor
	Amount      *big.Int
	DaoID       *uint32

	OnStatusChange func(StatusChange)
	OnComplete     func()
}

// OutOperation moves assets held by a DAO multisig to the asset hub. The
// transfer is dispatched through INV4 on the home chain.
type OutOperation struct {
	tracker
	params OutParams
	chains bridgectrl.Chains
	home   chainman.Mutator
}

// NewOutOperation creates an outbound operation submitting through home.
func NewOutOperation(params OutParams, chains bridgectrl.Chains, home chainman.Mutator, notifier Notifier) *OutOperation {
	return &OutOperation{
		tracker: newTracker(string(bridgectrl.DirectionOut), MsgBridgeOutSuccess, notifier),
		params:  params,
		chains:  chains,
		home:    home,
	}
}

// Execute submits the multisig call and follows it until the submission
// ends. Missing parameters are reported before anything is submitted.
func (op *OutOperation) Execute(ctx context.Context) error {
	call, err := op.BuildCall()
	if err != nil {
		return err
	}
	return op.submit(ctx, op.home, call, op.params.OnStatusChange, op.params.OnComplete)
}

// BuildCall builds the multisig call wrapping the transfer.
func (op *OutOperation) BuildCall() (chainman.Call, error) {
	p := op.params
	if strings.TrimSpace(p.Destination) == "" {
		return chainman.Call{}, errors.Wrap(gerror.ErrMissingParams, "destination")
	}
	if p.Amount == nil || p.Amount.Sign() <= 0 {
		return chainman.Call{}, errors.Wrap(gerror.ErrMissingParams, "amount")
	}
	if p.Asset == nil {
		return chainman.Call{}, errors.Wrap(gerror.ErrMissingParams, "asset")
	}
	if p.DaoID == nil {
		return chainman.Call{}, errors.Wrap(gerror.ErrMissingParams, "dao id")
	}
	if !op.IsLocationSupported() {
		return chainman.Call{}, errors.Wrapf(gerror.ErrUnsupportedLocation, "asset %s is not bridgeable to the asset hub", p.Asset.Symbol)
	}
	destination, err := utils.ParseAccountID(p.Destination)
	if err != nil {
		return chainman.Call{}, errors.Wrapf(gerror.ErrInvalidAccount, "destination %s: %v", p.Destination, err)
	}

	// the asset is addressed the way the asset hub knows it
	hubID, _ := xcm.GetAssetHubID(p.Asset.Location)
	ref := xcm.CreateAssetReference(p.Asset.Location, hubID, op.chains.AssetsPalletInstance)
	transfer := transferAssetsCall(op.chains.AssetHubParaID, destination, ref, p.Amount)
	return operateMultisigCall(*p.DaoID, transfer), nil
}

// Validate reports whether the parameters describe a supported transfer.
func (op *OutOperation) Validate() bool {
	return bridgectrl.ValidateBridgeOut(bridgectrl.OutRequest{
		Destination: op.params.Destination,
		Asset:       op.params.Asset,
		Amount:      op.params.Amount,
		DaoID:       op.params.DaoID,
	}, op.chains.AssetHubParaID)
}

// ChainID returns the parachain the assets arrive on.
func (op *OutOperation) ChainID() uint32 {
	return op.chains.AssetHubParaID
}

// IsLocationSupported reports whether the asset can be bridged out.
func (op *OutOperation) IsLocationSupported() bool {
	return bridgectrl.IsBridgeSupportedOut(op.params.Asset, op.chains.AssetHubParaID)
}

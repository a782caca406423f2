package bridgectrl

import (
	"context"
	"math/big"

	"github.com/InvArch/invarch-bridge-service/amount"
	"github.com/InvArch/invarch-bridge-service/chainman"
	"github.com/InvArch/invarch-bridge-service/gerror"
	"github.com/InvArch/invarch-bridge-service/log"
	"github.com/InvArch/invarch-bridge-service/metrics"
	"github.com/InvArch/invarch-bridge-service/models"
	"github.com/InvArch/invarch-bridge-service/utils"
	"github.com/InvArch/invarch-bridge-service/xcm"
	"github.com/pkg/errors"
)

// Direction of a bridge transfer, seen from the home chain.
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// TransferRequest is an amount check against a registry asset. Payer is
// optional; when set its balance on the source chain bounds the amount.
type TransferRequest struct {
	Direction Direction
	AssetID   uint32
	Amount    string
	Payer     string
	MinAmount *big.Int
}

// BridgeController validates bridge transfers with the configured chains,
// the asset registry and the chains' balances.
type BridgeController struct {
	chains     Chains
	normalizer amount.Normalizer
	assets     assetStore
	home       chainman.Querier
	assetHub   chainman.Querier
}

// NewBridgeController creates new BridgeController. The queriers are only
// needed for balance aware validation and may be nil.
func NewBridgeController(cfg Config, chains Chains, assets interface{}, home, assetHub chainman.Querier) (*BridgeController, error) {
	store, ok := assets.(assetStore)
	if !ok || assets == nil {
		return nil, errors.Wrap(gerror.ErrMissingParams, "asset store")
	}
	mode, err := amount.ParseRoundingMode(string(cfg.Rounding))
	if err != nil {
		return nil, err
	}
	if mode != amount.RoundFloor {
		log.Warnf("bridge amounts are rounded %s, transfers may exceed the typed amount by one minor unit", mode)
	}
	return &BridgeController{
		chains:     chains,
		normalizer: amount.NewNormalizer(mode),
		assets:     store,
		home:       home,
		assetHub:   assetHub,
	}, nil
}

// Chains returns the configured chain identifiers.
func (bc *BridgeController) Chains() Chains {
	return bc.chains
}

// Normalizer returns the amount normalizer in use.
func (bc *BridgeController) Normalizer() amount.Normalizer {
	return bc.normalizer
}

// Asset resolves a registry id.
func (bc *BridgeController) Asset(id uint32) (*models.AssetDescriptor, error) {
	return bc.assets.GetAsset(id)
}

// ValidateBridgeAmount validates p with the configured rounding.
func (bc *BridgeController) ValidateBridgeAmount(p ValidateAmountParams) ValidationResult {
	return validateAmount(bc.normalizer, p)
}

// IsBridgeSupportedIn reports whether loc can be bridged from the asset hub.
func (bc *BridgeController) IsBridgeSupportedIn(loc *xcm.VersionedLocation) bool {
	return IsBridgeSupportedIn(loc, bc.chains.AssetHubParaID)
}

// IsBridgeSupportedOut reports whether the registry asset can be bridged to
// the asset hub.
func (bc *BridgeController) IsBridgeSupportedOut(assetID uint32) bool {
	asset, err := bc.assets.GetAsset(assetID)
	if err != nil {
		return false
	}
	return IsBridgeSupportedOut(asset, bc.chains.AssetHubParaID)
}

// GetBridgeSourceChain classifies loc.
func (bc *BridgeController) GetBridgeSourceChain(loc *xcm.VersionedLocation) SourceChain {
	return GetBridgeSourceChain(loc, bc.chains.AssetHubParaID)
}

// ValidateBridge checks an inbound request.
func (bc *BridgeController) ValidateBridge(req InRequest) bool {
	return ValidateBridge(req, bc.chains.AssetHubParaID)
}

// ValidateBridgeOut checks an outbound request.
func (bc *BridgeController) ValidateBridgeOut(req OutRequest) bool {
	return ValidateBridgeOut(req, bc.chains.AssetHubParaID)
}

// ValidateTransfer validates an amount of a registry asset. When a payer is
// given its balance is read from the source chain: the asset hub for inbound
// transfers, the home chain for outbound ones.
func (bc *BridgeController) ValidateTransfer(ctx context.Context, req TransferRequest) (ValidationResult, error) {
	asset, err := bc.assets.GetAsset(req.AssetID)
	if err != nil {
		return ValidationResult{}, err
	}
	params := ValidateAmountParams{
		Amount:             req.Amount,
		AssetDecimals:      asset.Decimals,
		ExistentialDeposit: asset.ExistentialDeposit,
		MinAmount:          req.MinAmount,
	}
	if req.Payer != "" {
		payer, err := utils.ParseAccountID(req.Payer)
		if err != nil {
			return ValidationResult{}, errors.Wrap(gerror.ErrInvalidAccount, err.Error())
		}
		balance, err := bc.balanceOf(ctx, req.Direction, asset, payer)
		if err != nil {
			return ValidationResult{}, err
		}
		params.CurrentBalance = balance
	}
	result := bc.ValidateBridgeAmount(params)
	if !result.IsValid {
		metrics.RecordValidationFailure(result.Error)
	}
	return result, nil
}

func (bc *BridgeController) balanceOf(ctx context.Context, dir Direction, asset *models.AssetDescriptor, payer utils.AccountID) (*big.Int, error) {
	switch dir {
	case DirectionIn:
		if bc.assetHub == nil {
			return nil, errors.Wrap(gerror.ErrChainNotConnected, "asset hub")
		}
		if xcm.IsNativeToken(asset.Location) {
			return chainman.BalanceOf(ctx, bc.assetHub, chainman.BalanceSystem, payer, 0)
		}
		id, ok := xcm.GetAssetHubID(asset.Location)
		if !ok || id > uint64(^uint32(0)) {
			return nil, errors.Wrapf(gerror.ErrUnsupportedLocation, "asset %d has no asset hub id", asset.ID)
		}
		return chainman.BalanceOf(ctx, bc.assetHub, chainman.BalanceAssets, payer, uint32(id))
	case DirectionOut:
		if bc.home == nil {
			return nil, errors.Wrap(gerror.ErrChainNotConnected, "home chain")
		}
		if asset.Native {
			return chainman.BalanceOf(ctx, bc.home, chainman.BalanceSystem, payer, 0)
		}
		return chainman.BalanceOf(ctx, bc.home, chainman.BalanceTokens, payer, asset.ID)
	}
	return nil, errors.Errorf("unknown direction %q", dir)
}

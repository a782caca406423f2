package bridgectrl

import (
	"math/big"
	"strings"

	"github.com/InvArch/invarch-bridge-service/amount"
	"github.com/InvArch/invarch-bridge-service/models"
	"github.com/InvArch/invarch-bridge-service/xcm"
)

// Validation messages, checked in this order.
const (
	MsgInvalidAmount           = "Please enter a valid amount greater than zero"
	MsgBelowMinimum            = "Amount is below the minimum required amount"
	MsgExceedsBalance          = "Amount exceeds available balance"
	MsgBelowExistentialDeposit = "Amount is below the existential deposit"
)

// ValidationResult is the verdict on a prospective transfer.
type ValidationResult struct {
	IsValid bool   `json:"isValid"`
	Error   string `json:"error,omitempty"`
}

func invalid(msg string) ValidationResult {
	return ValidationResult{IsValid: false, Error: msg}
}

// ValidateAmountParams are the inputs of ValidateBridgeAmount. CurrentBalance
// and MinAmount are optional.
type ValidateAmountParams struct {
	Amount             string
	AssetDecimals      uint8
	ExistentialDeposit *big.Int
	CurrentBalance     *big.Int
	MinAmount          *big.Int
}

// SourceChain is where an inbound asset comes from.
type SourceChain string

const (
	SourceAssetHub SourceChain = "AssetHub"
	SourceRelay    SourceChain = "Relay"
	SourceUnknown  SourceChain = "Unknown"
)

// InRequest is what an inbound transfer needs before it can be built.
type InRequest struct {
	Beneficiary string
	Location    *xcm.VersionedLocation
	// AssetID is the asset hub id; required unless the location is native
	AssetID *uint64
	Amount  *big.Int
}

// OutRequest is what an outbound transfer needs before it can be built.
type OutRequest struct {
	Destination string
	Asset       *models.AssetDescriptor
	Amount      *big.Int
	DaoID       *uint32
}

// ValidateBridgeAmount validates amount with floor rounding.
func ValidateBridgeAmount(p ValidateAmountParams) ValidationResult {
	return validateAmount(amount.NewNormalizer(amount.RoundFloor), p)
}

// ValidateBridgeAmountWith validates amount with the given rounding.
func ValidateBridgeAmountWith(mode amount.RoundingMode, p ValidateAmountParams) ValidationResult {
	return validateAmount(amount.NewNormalizer(mode), p)
}

func validateAmount(n amount.Normalizer, p ValidateAmountParams) ValidationResult {
	parsed, ok := n.Parse(p.Amount)
	if !ok || !parsed.IsPositive() {
		return invalid(MsgInvalidAmount)
	}
	raw, ok := n.Scale(parsed, p.AssetDecimals)
	// an amount below one minor unit floors to zero
	if !ok || raw.Sign() == 0 {
		return invalid(MsgInvalidAmount)
	}
	if p.MinAmount != nil && raw.Cmp(p.MinAmount) < 0 {
		return invalid(MsgBelowMinimum)
	}
	if p.CurrentBalance != nil && raw.Cmp(p.CurrentBalance) > 0 {
		return invalid(MsgExceedsBalance)
	}
	if p.ExistentialDeposit != nil && raw.Cmp(p.ExistentialDeposit) < 0 {
		return invalid(MsgBelowExistentialDeposit)
	}
	return ValidationResult{IsValid: true}
}

// IsBridgeSupportedIn reports whether an asset at loc can be bridged in:
// assets of the asset hub and the relay native currency.
func IsBridgeSupportedIn(loc *xcm.VersionedLocation, assetHubParaID uint32) bool {
	return xcm.IsAssetFromAssetHub(loc, assetHubParaID) || xcm.IsNativeToken(loc)
}

// IsBridgeSupportedOut reports whether a home chain asset can be bridged to
// the asset hub: it must be a foreign asset the asset hub can address.
func IsBridgeSupportedOut(asset *models.AssetDescriptor, assetHubParaID uint32) bool {
	if asset == nil || asset.Native || asset.Location == nil {
		return false
	}
	if xcm.IsNativeToken(asset.Location) {
		return true
	}
	if !xcm.IsAssetFromAssetHub(asset.Location, assetHubParaID) {
		return false
	}
	_, ok := xcm.GetAssetHubID(asset.Location)
	return ok
}

// GetBridgeSourceChain classifies the origin of an asset location.
func GetBridgeSourceChain(loc *xcm.VersionedLocation, assetHubParaID uint32) SourceChain {
	switch {
	case xcm.IsAssetFromAssetHub(loc, assetHubParaID):
		return SourceAssetHub
	case xcm.IsNativeToken(loc):
		return SourceRelay
	}
	return SourceUnknown
}

// ValidateBridge checks an inbound request is complete and supported.
func ValidateBridge(req InRequest, assetHubParaID uint32) bool {
	if strings.TrimSpace(req.Beneficiary) == "" {
		return false
	}
	if req.Amount == nil || req.Amount.Sign() <= 0 {
		return false
	}
	if !IsBridgeSupportedIn(req.Location, assetHubParaID) {
		return false
	}
	return xcm.IsNativeToken(req.Location) || req.AssetID != nil
}

// ValidateBridgeOut checks an outbound request is complete and supported.
func ValidateBridgeOut(req OutRequest, assetHubParaID uint32) bool {
	if strings.TrimSpace(req.Destination) == "" {
		return false
	}
	if req.Amount == nil || req.Amount.Sign() <= 0 {
		return false
	}
	if req.DaoID == nil {
		return false
	}
	return IsBridgeSupportedOut(req.Asset, assetHubParaID)
}

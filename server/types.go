package server

import (
	"github.com/InvArch/invarch-bridge-service/bridgectrl"
	"github.com/InvArch/invarch-bridge-service/models"
)

// ValidateRequest asks whether amount of an asset can be bridged
type ValidateRequest struct {
	Direction bridgectrl.Direction `json:"direction" binding:"required,oneof=in out"`
	AssetID   uint32               `json:"assetId"`
	Amount    string               `json:"amount"`
	// Payer enables the balance check when set
	Payer string `json:"payer"`
	// MinAmount in minor units
	MinAmount string `json:"minAmount"`
}

// BridgeInRequest starts a transfer from the asset hub to the home chain
type BridgeInRequest struct {
	// Beneficiary defaults to the selected account
	Beneficiary string `json:"beneficiary"`
	AssetID     uint32 `json:"assetId"`
	Amount      string `json:"amount" binding:"required"`
}

// BridgeOutRequest starts a transfer from a DAO to the asset hub
type BridgeOutRequest struct {
	// Destination defaults to the selected account
	Destination string `json:"destination"`
	AssetID     uint32 `json:"assetId"`
	Amount      string `json:"amount" binding:"required"`
	// DaoID defaults to the selected DAO
	DaoID *uint32 `json:"daoId"`
}

// AssetView is an asset with its bridge support
type AssetView struct {
	*models.AssetDescriptor
	SupportedIn  bool                   `json:"supportedIn"`
	SupportedOut bool                   `json:"supportedOut"`
	SourceChain  bridgectrl.SourceChain `json:"sourceChain"`
}

// PreferencesRequest updates the selected account and DAO
type PreferencesRequest struct {
	SelectedAccount string  `json:"selectedAccount"`
	SelectedDaoID   *uint32 `json:"selectedDaoId"`
}

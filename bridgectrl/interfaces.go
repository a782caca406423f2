package bridgectrl

import (
	"github.com/InvArch/invarch-bridge-service/models"
)

// assetStore resolves home chain registry ids.
type assetStore interface {
	GetAsset(id uint32) (*models.AssetDescriptor, error)
}

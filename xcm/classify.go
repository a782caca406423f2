package xcm

import (
	"github.com/InvArch/invarch-bridge-service/log"
)

// IsNativeToken reports whether loc names the native currency of the relay
// chain, i.e. a V3 or V4 location with an empty interior.
func IsNativeToken(loc *VersionedLocation) bool {
	if loc == nil {
		return false
	}
	if loc.Version != V3 && loc.Version != V4 {
		return false
	}
	_, ok := loc.Location.Interior.(Here)
	return ok
}

// IsAssetFromAssetHub reports whether loc is an asset living on the asset hub
// parachain assetHubParaID, seen from a sibling parachain. Interiors other
// than X1..X4 yield false with a warning, except Here: that is the relay
// native token, a supported asset checked through IsNativeToken.
func IsAssetFromAssetHub(loc *VersionedLocation, assetHubParaID uint32) bool {
	if loc == nil || loc.Location.Parents != 1 {
		return false
	}
	switch in := loc.Location.Interior.(type) {
	case X1:
		p, ok := in[0].(Parachain)
		return ok && uint32(p) == assetHubParaID
	case X2, X3, X4:
		for _, j := range in.Items() {
			if p, ok := j.(Parachain); ok && uint32(p) == assetHubParaID {
				return true
			}
		}
		return false
	case Here:
		// relay native, no warning
		return false
	default:
		log.Warnf("unsupported interior %q checking asset hub origin", InteriorType(in))
		return false
	}
}

// GetAssetHubID returns the asset id (first GeneralIndex junction) of an
// asset hub location. Like IsAssetFromAssetHub it warns on interiors other
// than X1..X4 and stays silent on Here, which has no asset id.
func GetAssetHubID(loc *VersionedLocation) (uint64, bool) {
	if loc == nil {
		return 0, false
	}
	switch in := loc.Location.Interior.(type) {
	case X1:
		if idx, ok := in[0].(GeneralIndex); ok {
			return uint64(idx), true
		}
		return 0, false
	case X2, X3, X4:
		for _, j := range in.Items() {
			if idx, ok := j.(GeneralIndex); ok {
				return uint64(idx), true
			}
		}
		return 0, false
	case Here:
		return 0, false
	default:
		log.Warnf("unsupported interior %q reading asset hub id", InteriorType(in))
		return 0, false
	}
}

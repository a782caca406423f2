package xcm

// DefaultAssetsPalletInstance is the index of the assets pallet on the
// asset hub runtime.
const DefaultAssetsPalletInstance uint8 = 50

// NativeAssetReference is the relay chain currency as seen from a parachain.
func NativeAssetReference() Location {
	return Location{Parents: 1, Interior: Here{}}
}

// CreateAssetReference converts a classified location into the asset id a
// transfer expects. Native locations map to {1, Here}, anything else to an
// asset of the local assets pallet addressed by assetID. Support must be
// checked by the caller.
func CreateAssetReference(loc *VersionedLocation, assetID uint64, assetsPallet uint8) Location {
	if IsNativeToken(loc) {
		return NativeAssetReference()
	}
	return NewLocation(0, PalletInstance(assetsPallet), GeneralIndex(assetID))
}

package bridgectrl

import (
	"math/big"
	"testing"

	"github.com/InvArch/invarch-bridge-service/models"
	"github.com/InvArch/invarch-bridge-service/xcm"
	"github.com/stretchr/testify/assert"
)

const assetHubParaID = uint32(1000)

func u32(v uint32) *uint32 { return &v }
func u64(v uint64) *uint64 { return &v }

func TestValidateBridgeAmount(t *testing.T) {
	cases := []struct {
		name     string
		params   ValidateAmountParams
		expected ValidationResult
	}{
		{
			"zero amount",
			ValidateAmountParams{Amount: "0", AssetDecimals: 6, ExistentialDeposit: big.NewInt(0), CurrentBalance: big.NewInt(10), MinAmount: big.NewInt(1)},
			ValidationResult{Error: MsgInvalidAmount},
		},
		{
			"negative amount",
			ValidateAmountParams{Amount: "-1", AssetDecimals: 6, ExistentialDeposit: big.NewInt(0)},
			ValidationResult{Error: MsgInvalidAmount},
		},
		{
			"not a number",
			ValidateAmountParams{Amount: "one", AssetDecimals: 6, ExistentialDeposit: big.NewInt(0)},
			ValidationResult{Error: MsgInvalidAmount},
		},
		{
			"empty",
			ValidateAmountParams{Amount: "", AssetDecimals: 6},
			ValidationResult{Error: MsgInvalidAmount},
		},
		{
			"below existential deposit",
			ValidateAmountParams{Amount: "1", AssetDecimals: 6, ExistentialDeposit: big.NewInt(2_000_000)},
			ValidationResult{Error: MsgBelowExistentialDeposit},
		},
		{
			"above existential deposit",
			ValidateAmountParams{Amount: "1", AssetDecimals: 6, ExistentialDeposit: big.NewInt(500_000)},
			ValidationResult{IsValid: true},
		},
		{
			"equal to existential deposit",
			ValidateAmountParams{Amount: "0.5", AssetDecimals: 6, ExistentialDeposit: big.NewInt(500_000)},
			ValidationResult{IsValid: true},
		},
		{
			"below minimum wins over balance",
			ValidateAmountParams{Amount: "1", AssetDecimals: 6, ExistentialDeposit: big.NewInt(0), CurrentBalance: big.NewInt(1), MinAmount: big.NewInt(2_000_000)},
			ValidationResult{Error: MsgBelowMinimum},
		},
		{
			"exceeds balance wins over existential deposit",
			ValidateAmountParams{Amount: "1", AssetDecimals: 6, ExistentialDeposit: big.NewInt(5_000_000), CurrentBalance: big.NewInt(999_999)},
			ValidationResult{Error: MsgExceedsBalance},
		},
		{
			"whole balance",
			ValidateAmountParams{Amount: "1", AssetDecimals: 6, ExistentialDeposit: big.NewInt(1), CurrentBalance: big.NewInt(1_000_000), MinAmount: big.NewInt(1_000_000)},
			ValidationResult{IsValid: true},
		},
		{
			"floors to zero without existential deposit",
			ValidateAmountParams{Amount: "0.0000001", AssetDecimals: 6},
			ValidationResult{Error: MsgInvalidAmount},
		},
		{
			"floors to zero with zero existential deposit",
			ValidateAmountParams{Amount: "0.0000009", AssetDecimals: 6, ExistentialDeposit: big.NewInt(0), CurrentBalance: big.NewInt(10)},
			ValidationResult{Error: MsgInvalidAmount},
		},
		{
			"one minor unit",
			ValidateAmountParams{Amount: "0.000001", AssetDecimals: 6, ExistentialDeposit: big.NewInt(0)},
			ValidationResult{IsValid: true},
		},
		{
			"floored below existential deposit",
			ValidateAmountParams{Amount: "0.4999999", AssetDecimals: 6, ExistentialDeposit: big.NewInt(500_000)},
			ValidationResult{Error: MsgBelowExistentialDeposit},
		},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, ValidateBridgeAmount(c.params), c.name)
	}
}

func TestSupportAndSourceChain(t *testing.T) {
	native := xcm.V4Location(xcm.NativeAssetReference())
	v2Native := xcm.VersionedLocation{Version: xcm.V2, Location: xcm.NativeAssetReference()}
	usdt := xcm.V4Location(xcm.NewLocation(1, xcm.Parachain(1000), xcm.PalletInstance(50), xcm.GeneralIndex(1984)))
	other := xcm.V4Location(xcm.NewLocation(1, xcm.Parachain(2030), xcm.GeneralIndex(1)))
	hubWithoutID := xcm.V4Location(xcm.NewLocation(1, xcm.Parachain(1000)))

	for i := 0; i < 2; i++ {
		assert.True(t, IsBridgeSupportedIn(&native, assetHubParaID))
		assert.True(t, IsBridgeSupportedIn(&usdt, assetHubParaID))
		assert.False(t, IsBridgeSupportedIn(&other, assetHubParaID))
		assert.False(t, IsBridgeSupportedIn(&v2Native, assetHubParaID))
		assert.False(t, IsBridgeSupportedIn(nil, assetHubParaID))
	}

	assert.Equal(t, SourceRelay, GetBridgeSourceChain(&native, assetHubParaID))
	assert.Equal(t, SourceAssetHub, GetBridgeSourceChain(&usdt, assetHubParaID))
	assert.Equal(t, SourceUnknown, GetBridgeSourceChain(&other, assetHubParaID))

	assets := []struct {
		asset    *models.AssetDescriptor
		expected bool
	}{
		{nil, false},
		{&models.AssetDescriptor{ID: 0, Native: true}, false},
		{&models.AssetDescriptor{ID: 1, Location: &native}, true},
		{&models.AssetDescriptor{ID: 2, Location: &usdt}, true},
		{&models.AssetDescriptor{ID: 3, Location: &other}, false},
		{&models.AssetDescriptor{ID: 4, Location: &hubWithoutID}, false},
		{&models.AssetDescriptor{ID: 5}, false},
	}
	for _, a := range assets {
		first := IsBridgeSupportedOut(a.asset, assetHubParaID)
		assert.Equal(t, a.expected, first)
		assert.Equal(t, first, IsBridgeSupportedOut(a.asset, assetHubParaID))
	}
}

func TestBridgeSupportIdempotent(t *testing.T) {
	usdt := xcm.V4Location(xcm.NewLocation(1, xcm.Parachain(1000), xcm.PalletInstance(50), xcm.GeneralIndex(1984)))
	before := usdt
	asset := &models.AssetDescriptor{ID: 2, Symbol: "USDT", Decimals: 6, Location: &usdt}

	in := IsBridgeSupportedIn(&usdt, assetHubParaID)
	out := IsBridgeSupportedOut(asset, assetHubParaID)
	assert.True(t, in)
	assert.True(t, out)

	assert.Equal(t, in, IsBridgeSupportedIn(&usdt, assetHubParaID))
	assert.Equal(t, out, IsBridgeSupportedOut(asset, assetHubParaID))
	assert.Equal(t, before, usdt)
	assert.Equal(t, &usdt, asset.Location)
}

func TestValidateBridge(t *testing.T) {
	native := xcm.V4Location(xcm.NativeAssetReference())
	usdt := xcm.V4Location(xcm.NewLocation(1, xcm.Parachain(1000), xcm.PalletInstance(50), xcm.GeneralIndex(1984)))
	alice := "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"

	cases := []struct {
		name     string
		req      InRequest
		expected bool
	}{
		{"native", InRequest{Beneficiary: alice, Location: &native, Amount: big.NewInt(1)}, true},
		{"asset with id", InRequest{Beneficiary: alice, Location: &usdt, AssetID: u64(1984), Amount: big.NewInt(1)}, true},
		{"asset without id", InRequest{Beneficiary: alice, Location: &usdt, Amount: big.NewInt(1)}, false},
		{"no beneficiary", InRequest{Beneficiary: " ", Location: &native, Amount: big.NewInt(1)}, false},
		{"zero amount", InRequest{Beneficiary: alice, Location: &native, Amount: big.NewInt(0)}, false},
		{"no amount", InRequest{Beneficiary: alice, Location: &native}, false},
		{"no location", InRequest{Beneficiary: alice, AssetID: u64(1), Amount: big.NewInt(1)}, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, ValidateBridge(c.req, assetHubParaID), c.name)
	}

	asset := &models.AssetDescriptor{ID: 8, Location: &usdt}
	outCases := []struct {
		name     string
		req      OutRequest
		expected bool
	}{
		{"complete", OutRequest{Destination: alice, Asset: asset, Amount: big.NewInt(5), DaoID: u32(0)}, true},
		{"no dao", OutRequest{Destination: alice, Asset: asset, Amount: big.NewInt(5)}, false},
		{"no destination", OutRequest{Asset: asset, Amount: big.NewInt(5), DaoID: u32(1)}, false},
		{"zero amount", OutRequest{Destination: alice, Asset: asset, Amount: new(big.Int), DaoID: u32(1)}, false},
		{"unsupported asset", OutRequest{Destination: alice, Asset: &models.AssetDescriptor{Native: true}, Amount: big.NewInt(5), DaoID: u32(1)}, false},
	}
	for _, c := range outCases {
		assert.Equal(t, c.expected, ValidateBridgeOut(c.req, assetHubParaID), c.name)
	}
}

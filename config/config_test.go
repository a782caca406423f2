package config

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/InvArch/invarch-bridge-service/amount"
	"github.com/InvArch/invarch-bridge-service/bridgectrl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultConfig(t *testing.T) {
	cfg, err := Load("", invarch)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "postgres", cfg.StateDB.Database)
	assert.Equal(t, []string{"localhost:6379"}, cfg.StateDB.Redis.Addrs)
	assert.Equal(t, "//Alice", cfg.Chain.SignerSeed)
	assert.Equal(t, 5*time.Minute, cfg.Chain.FinalizationTimeout.Duration)
	assert.Equal(t, amount.RoundFloor, cfg.BridgeController.Rounding)
	assert.Equal(t, 3, cfg.AssetCache.MaxRetries)
	assert.Equal(t, "8080", cfg.BridgeServer.HTTPPort)
	assert.Equal(t, time.Hour, cfg.BridgeServer.OperationTTL.Duration)
	assert.Equal(t, 5*time.Second, cfg.MessagePushProducer.DedupWindow.Duration)
	assert.Equal(t, int64(-1), cfg.CoinKafkaConsumer.InitialOffset)
	assert.False(t, cfg.Metrics.Enabled)

	assert.Equal(t, bridgectrl.Chains{HomeParaID: 3340, AssetHubParaID: 1000, AssetsPalletInstance: 50}, cfg.Chains())
	native, err := cfg.NativeAsset()
	require.NoError(t, err)
	assert.Equal(t, "VARCH", native.Symbol)
	assert.True(t, native.Native)
	assert.Equal(t, 0, native.ExistentialDeposit.Cmp(big.NewInt(1_000_000_000)))
}

func TestLoadNetworkPresets(t *testing.T) {
	cfg, err := Load("", tinkernet)
	require.NoError(t, err)
	assert.Equal(t, uint32(2125), cfg.HomeParaID)
	assert.Equal(t, "TNKR", cfg.NativeSymbol)

	_, err = Load("", "")
	assert.Error(t, err)

	_, err = Load("", "mainnet")
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bridge.toml")
	content := `
[BridgeServer]
HTTPPort = "9000"

[BridgeController]
Rounding = "half-up"

[NetworkConfig]
HomeParaID = 4000
AssetHubParaID = 1000
AssetsPalletInstance = 50
NativeSymbol = "TEST"
NativeDecimals = 10
NativeExistentialDeposit = "500"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.BridgeServer.HTTPPort)
	assert.Equal(t, amount.RoundHalfUp, cfg.BridgeController.Rounding)
	assert.Equal(t, uint32(4000), cfg.HomeParaID)
	assert.Equal(t, uint8(10), cfg.NativeDecimals)
	// defaults the file does not override are kept
	assert.Equal(t, "postgres", cfg.StateDB.Database)

	_, err = Load(path, invarch)
	assert.Error(t, err, "network given twice")
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("INVARCH_BRIDGE_BRIDGESERVER_HTTPPORT", "7070")
	t.Setenv("INVARCH_BRIDGE_STATEDB_DATABASE", "redis")

	cfg, err := Load("", local)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.BridgeServer.HTTPPort)
	assert.Equal(t, "redis", cfg.StateDB.Database)
}

func TestNativeAssetInvalidDeposit(t *testing.T) {
	n := localConfig
	n.NativeExistentialDeposit = "1.5"
	_, err := n.NativeAsset()
	assert.Error(t, err)
}

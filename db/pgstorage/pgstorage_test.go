package pgstorage

import (
	"context"
	"testing"

	"github.com/InvArch/invarch-bridge-service/gerror"
	"github.com/InvArch/invarch-bridge-service/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *PostgresStorage {
	t.Helper()
	dbCfg := NewConfigFromEnv()
	if err := InitOrReset(dbCfg); err != nil {
		t.Skipf("postgres is not available: %v", err)
	}
	store, err := NewPostgresStorage(dbCfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestPrices(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	prices, err := store.GetPrices(ctx)
	require.NoError(t, err)
	assert.Empty(t, prices)

	require.NoError(t, store.SetPrices(ctx, []*models.TokenPrice{
		{Symbol: "USDT", Price: 1, Time: 100},
		{Symbol: "DOT", Price: 6.5, Time: 100},
		nil,
	}))
	// an older price does not overwrite a newer one
	require.NoError(t, store.SetPrices(ctx, []*models.TokenPrice{
		{Symbol: "DOT", Price: 5, Time: 50},
		{Symbol: "USDT", Price: 0.99, Time: 200},
	}))

	prices, err = store.GetPrices(ctx)
	require.NoError(t, err)
	require.Len(t, prices, 2)
	assert.Equal(t, models.TokenPrice{Symbol: "DOT", Price: 6.5, Time: 100}, *prices[0])
	assert.Equal(t, models.TokenPrice{Symbol: "USDT", Price: 0.99, Time: 200}, *prices[1])
}

func TestPreferences(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.GetPreferences(ctx)
	assert.True(t, errors.Is(err, gerror.ErrStorageNotFound))

	dao := uint32(12)
	require.NoError(t, store.SetPreferences(ctx, &models.Preferences{SelectedAccount: "i4zTcKHr38MbSUrhFLVKHG5iULhYttBVrqVon2rv6iWcxjwQK", SelectedDaoID: &dao}))
	prefs, err := store.GetPreferences(ctx)
	require.NoError(t, err)
	require.NotNil(t, prefs.SelectedDaoID)
	assert.Equal(t, dao, *prefs.SelectedDaoID)

	require.NoError(t, store.SetPreferences(ctx, &models.Preferences{SelectedAccount: "other"}))
	prefs, err = store.GetPreferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, "other", prefs.SelectedAccount)
	assert.Nil(t, prefs.SelectedDaoID)
}

package appstate

import (
	"context"
	"testing"

	"github.com/InvArch/invarch-bridge-service/gerror"
	"github.com/InvArch/invarch-bridge-service/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const aliceHex = "0xd43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"

type storeMock struct {
	mock.Mock
}

func (m *storeMock) SetPrices(ctx context.Context, prices []*models.TokenPrice) error {
	return m.Called(ctx, prices).Error(0)
}

func (m *storeMock) GetPrices(ctx context.Context) ([]*models.TokenPrice, error) {
	args := m.Called(ctx)
	prices, _ := args.Get(0).([]*models.TokenPrice)
	return prices, args.Error(1)
}

func (m *storeMock) SetPreferences(ctx context.Context, prefs *models.Preferences) error {
	return m.Called(ctx, prefs).Error(0)
}

func (m *storeMock) GetPreferences(ctx context.Context) (*models.Preferences, error) {
	args := m.Called(ctx)
	prefs, _ := args.Get(0).(*models.Preferences)
	return prefs, args.Error(1)
}

func TestHydrate(t *testing.T) {
	ctx := context.Background()
	dao := uint32(4)
	store := new(storeMock)
	store.On("GetPrices", ctx).Return([]*models.TokenPrice{{Symbol: "dot", Price: 6, Time: 1}, {Symbol: "USDT", Price: 1, Time: 1}}, nil)
	store.On("GetPreferences", ctx).Return(&models.Preferences{SelectedAccount: aliceHex, SelectedDaoID: &dao}, nil)

	s := New(store)
	require.NoError(t, s.Hydrate(ctx))
	price, ok := s.Price("DOT")
	require.True(t, ok)
	assert.Equal(t, 6.0, price.Price)
	assert.Len(t, s.Prices(), 2)
	assert.Equal(t, aliceHex, s.Preferences().SelectedAccount)
	assert.Equal(t, uint32(4), *s.Preferences().SelectedDaoID)
}

func TestHydrateWithoutPreferences(t *testing.T) {
	ctx := context.Background()
	store := new(storeMock)
	store.On("GetPrices", ctx).Return(nil, nil)
	store.On("GetPreferences", ctx).Return(nil, gerror.ErrStorageNotFound)

	s := New(store)
	require.NoError(t, s.Hydrate(ctx))
	assert.Empty(t, s.Prices())
	assert.Equal(t, models.Preferences{}, s.Preferences())

	failing := new(storeMock)
	failing.On("GetPrices", ctx).Return(nil, errors.New("connection reset"))
	require.Error(t, New(failing).Hydrate(ctx))
}

func TestUpdatePrices(t *testing.T) {
	ctx := context.Background()
	store := new(storeMock)
	store.On("SetPrices", ctx, mock.MatchedBy(func(p []*models.TokenPrice) bool { return len(p) == 1 })).Return(nil)
	s := New(store)

	require.NoError(t, s.UpdatePrices(ctx, []*models.TokenPrice{{Symbol: "DOT", Price: 6, Time: 10}}))
	// stale price is neither applied nor stored
	require.NoError(t, s.UpdatePrices(ctx, []*models.TokenPrice{{Symbol: "DOT", Price: 5, Time: 5}, nil}))
	require.NoError(t, s.UpdatePrices(ctx, []*models.TokenPrice{{Symbol: "DOT", Price: 7, Time: 11}}))

	price, _ := s.Price("dot")
	assert.Equal(t, 7.0, price.Price)
	store.AssertNumberOfCalls(t, "SetPrices", 2)
}

func TestSelectAccountAndDao(t *testing.T) {
	ctx := context.Background()
	store := new(storeMock)
	store.On("SetPreferences", ctx, mock.Anything).Return(nil)
	s := New(store)

	require.Error(t, s.SelectAccount(ctx, "not an address"))
	require.NoError(t, s.SelectAccount(ctx, aliceHex))
	dao := uint32(9)
	require.NoError(t, s.SelectDao(ctx, &dao))
	dao = 10
	assert.Equal(t, uint32(9), *s.Preferences().SelectedDaoID, "state keeps its own copy")

	// switching account forgets the DAO
	require.NoError(t, s.SelectAccount(ctx, ""))
	assert.Nil(t, s.Preferences().SelectedDaoID)
	store.AssertNumberOfCalls(t, "SetPreferences", 3)
}

func TestMemoryOnly(t *testing.T) {
	ctx := context.Background()
	s := New(nil)
	require.NoError(t, s.Hydrate(ctx))
	require.NoError(t, s.UpdatePrices(ctx, []*models.TokenPrice{{Symbol: "USDT", Price: 1}}))
	require.NoError(t, s.SelectAccount(ctx, aliceHex))
	assert.Equal(t, aliceHex, s.Preferences().SelectedAccount)
}

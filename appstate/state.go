package appstate

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/InvArch/invarch-bridge-service/gerror"
	"github.com/InvArch/invarch-bridge-service/log"
	"github.com/InvArch/invarch-bridge-service/models"
	"github.com/InvArch/invarch-bridge-service/utils"
	"github.com/pkg/errors"
)

// Store persists the state between restarts.
type Store interface {
	SetPrices(ctx context.Context, prices []*models.TokenPrice) error
	GetPrices(ctx context.Context) ([]*models.TokenPrice, error)
	SetPreferences(ctx context.Context, prefs *models.Preferences) error
	GetPreferences(ctx context.Context) (*models.Preferences, error)
}

// State is the process wide portal state: token prices and the selected
// account and DAO. A nil store keeps everything in memory.
type State struct {
	store Store

	lock   sync.RWMutex
	prices map[string]models.TokenPrice
	prefs  models.Preferences
}

// New creates an empty state backed by store.
func New(store Store) *State {
	return &State{store: store, prices: make(map[string]models.TokenPrice)}
}

// Hydrate loads prices and preferences from the store.
func (s *State) Hydrate(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	prices, err := s.store.GetPrices(ctx)
	if err != nil {
		return errors.Wrap(err, "load prices")
	}
	prefs, err := s.store.GetPreferences(ctx)
	if err != nil && !errors.Is(err, gerror.ErrStorageNotFound) {
		return errors.Wrap(err, "load preferences")
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	for _, p := range prices {
		s.mergePrice(p)
	}
	if prefs != nil {
		s.prefs = copyPreferences(*prefs)
	}
	log.Infof("state hydrated with %d prices, account selected: %t", len(s.prices), s.prefs.SelectedAccount != "")
	return nil
}

// Prices returns the known prices sorted by symbol.
func (s *State) Prices() []models.TokenPrice {
	s.lock.RLock()
	defer s.lock.RUnlock()
	out := make([]models.TokenPrice, 0, len(s.prices))
	for _, p := range s.prices {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// Price returns the price of symbol, case insensitive.
func (s *State) Price(symbol string) (models.TokenPrice, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	p, ok := s.prices[strings.ToUpper(symbol)]
	return p, ok
}

// UpdatePrices merges prices into the state and persists the ones that
// changed it. A price older than the known one is ignored.
func (s *State) UpdatePrices(ctx context.Context, prices []*models.TokenPrice) error {
	s.lock.Lock()
	var changed []*models.TokenPrice
	for _, p := range prices {
		if s.mergePrice(p) {
			changed = append(changed, p)
		}
	}
	s.lock.Unlock()

	if len(changed) == 0 || s.store == nil {
		return nil
	}
	return errors.Wrap(s.store.SetPrices(ctx, changed), "store prices")
}

func (s *State) mergePrice(p *models.TokenPrice) bool {
	if p == nil || p.Symbol == "" {
		return false
	}
	key := strings.ToUpper(p.Symbol)
	if known, ok := s.prices[key]; ok && known.Time > p.Time {
		return false
	}
	s.prices[key] = *p
	return true
}

// Preferences returns the selected account and DAO.
func (s *State) Preferences() models.Preferences {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return copyPreferences(s.prefs)
}

// SelectAccount selects account, which must be a valid hex or SS58
// address. An empty account clears the selection and the DAO.
func (s *State) SelectAccount(ctx context.Context, account string) error {
	account = strings.TrimSpace(account)
	if account != "" {
		if _, err := utils.ParseAccountID(account); err != nil {
			return err
		}
	}
	prefs := s.Preferences()
	if prefs.SelectedAccount != account {
		prefs.SelectedDaoID = nil
	}
	prefs.SelectedAccount = account
	return s.SetPreferences(ctx, prefs)
}

// SelectDao selects the DAO the outbound transfers are made from, nil
// clears it.
func (s *State) SelectDao(ctx context.Context, daoID *uint32) error {
	prefs := s.Preferences()
	prefs.SelectedDaoID = daoID
	return s.SetPreferences(ctx, prefs)
}

// SetPreferences replaces the preferences and persists them.
func (s *State) SetPreferences(ctx context.Context, prefs models.Preferences) error {
	prefs = copyPreferences(prefs)
	s.lock.Lock()
	s.prefs = prefs
	s.lock.Unlock()

	if s.store == nil {
		return nil
	}
	return errors.Wrap(s.store.SetPreferences(ctx, &prefs), "store preferences")
}

func copyPreferences(p models.Preferences) models.Preferences {
	if p.SelectedDaoID != nil {
		id := *p.SelectedDaoID
		p.SelectedDaoID = &id
	}
	return p
}

package localcache

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/InvArch/invarch-bridge-service/gerror"
	"github.com/InvArch/invarch-bridge-service/log"
	"github.com/InvArch/invarch-bridge-service/metrics"
	"github.com/InvArch/invarch-bridge-service/models"
	"github.com/pkg/errors"
)

const (
	defaultRefreshInterval = 5 * time.Minute
	defaultMaxRetries      = 5
)

// AssetCache serves the assets known to the home chain.
type AssetCache interface {
	GetAsset(id uint32) (*models.AssetDescriptor, error)
	GetAssets() []*models.AssetDescriptor
	Native() *models.AssetDescriptor
}

// AssetSource lists the assets of the chain's asset registry.
type AssetSource interface {
	ListAssets(ctx context.Context) ([]*models.AssetDescriptor, error)
}

// AssetSourceFunc adapts a function to AssetSource.
type AssetSourceFunc func(ctx context.Context) ([]*models.AssetDescriptor, error)

// ListAssets implements AssetSource.
func (f AssetSourceFunc) ListAssets(ctx context.Context) ([]*models.AssetDescriptor, error) {
	return f(ctx)
}

// RegistryCache is an AssetCache refreshed from an AssetSource.
type RegistryCache struct {
	lock   sync.RWMutex
	data   map[uint32]*models.AssetDescriptor
	native *models.AssetDescriptor
	source AssetSource
	cfg    Config
}

// NewAssetCache loads the registry once and returns the cache. native is the
// synthetic entry of the chain's own currency; it shadows any registry entry
// with the same id.
func NewAssetCache(ctx context.Context, cfg Config, source AssetSource, native *models.AssetDescriptor) (*RegistryCache, error) {
	if source == nil {
		return nil, errors.New("NewAssetCache source is nil")
	}
	if native == nil {
		return nil, errors.Wrap(gerror.ErrMissingParams, "native asset descriptor")
	}
	if cfg.RefreshInterval.Duration <= 0 {
		cfg.RefreshInterval.Duration = defaultRefreshInterval
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	nativeCopy := *native
	nativeCopy.Native = true
	cache := &RegistryCache{
		data:   make(map[uint32]*models.AssetDescriptor),
		native: &nativeCopy,
		source: source,
		cfg:    cfg,
	}
	if err := cache.doRefresh(ctx); err != nil {
		log.Errorf("init asset cache err[%v]", err)
		return nil, err
	}
	return cache, nil
}

// Refresh reloads the registry every RefreshInterval until ctx is done.
func (c *RegistryCache) Refresh(ctx context.Context) {
	ticker := time.NewTicker(c.cfg.RefreshInterval.Duration)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			log.Debug("start refreshing asset cache")
			if err := c.doRefresh(ctx); err != nil {
				log.Errorf("refresh asset cache error[%v]", err)
			}
		}
	}
}

// doRefresh reads the registry and replaces the cached data. A failed read
// is retried up to MaxRetries times before the old data is kept.
func (c *RegistryCache) doRefresh(ctx context.Context) error {
	var (
		assets []*models.AssetDescriptor
		err    error
	)
	for retry := 0; ; retry++ {
		assets, err = c.source.ListAssets(ctx)
		if err == nil {
			break
		}
		if retry >= c.cfg.MaxRetries || ctx.Err() != nil {
			metrics.RecordAssetRefresh(false, 0)
			return errors.Wrap(err, "list assets")
		}
	}

	newData := make(map[uint32]*models.AssetDescriptor, len(assets)+1)
	for _, a := range assets {
		if a == nil {
			continue
		}
		newData[a.ID] = a
	}
	newData[c.native.ID] = c.native

	c.lock.Lock()
	c.data = newData
	c.lock.Unlock()
	metrics.RecordAssetRefresh(true, len(newData))
	log.Debugf("asset cache holds %d assets", len(newData))
	return nil
}

// GetAsset returns the descriptor of id.
func (c *RegistryCache) GetAsset(id uint32) (*models.AssetDescriptor, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	a, ok := c.data[id]
	if !ok {
		return nil, errors.Wrapf(gerror.ErrAssetNotFound, "asset %d", id)
	}
	return a, nil
}

// GetAssets returns every asset ordered by id.
func (c *RegistryCache) GetAssets() []*models.AssetDescriptor {
	c.lock.RLock()
	assets := make([]*models.AssetDescriptor, 0, len(c.data))
	for _, a := range c.data {
		assets = append(assets, a)
	}
	c.lock.RUnlock()
	sort.Slice(assets, func(i, j int) bool { return assets[i].ID < assets[j].ID })
	return assets
}

// Native returns the native currency entry.
func (c *RegistryCache) Native() *models.AssetDescriptor {
	return c.native
}

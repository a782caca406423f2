package redisstorage

import (
	"context"
	"encoding/json"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/InvArch/invarch-bridge-service/gerror"
	"github.com/InvArch/invarch-bridge-service/log"
	"github.com/InvArch/invarch-bridge-service/models"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix  = "invarch_bridge_"
	tokenPriceHashKey = "token_prices"
	preferencesKey    = "preferences"
)

// redisStorageImpl implements RedisStorage interface
type redisStorageImpl struct {
	client    RedisClient
	keyPrefix string
	mockPrice bool
}

// NewRedisStorage connects to the configured redis server or cluster.
func NewRedisStorage(cfg Config) (RedisStorage, error) {
	if len(cfg.Addrs) == 0 {
		return nil, errors.New("redis address is empty")
	}
	var client RedisClient
	if cfg.IsClusterMode {
		client = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
		})
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:     cfg.Addrs[0],
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	}
	return newRedisStorageWithClient(context.Background(), cfg, client)
}

func newRedisStorageWithClient(ctx context.Context, cfg Config, client RedisClient) (*redisStorageImpl, error) {
	res, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, errors.Wrap(err, "cannot connect to redis server")
	}
	log.Debugf("redis health check done, result: %v", res)
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &redisStorageImpl{client: client, keyPrefix: prefix, mockPrice: cfg.MockPrice}, nil
}

func (s *redisStorageImpl) key(name string) string {
	return s.keyPrefix + name
}

// SetPrices stores the prices, one hash field per symbol.
func (s *redisStorageImpl) SetPrices(ctx context.Context, prices []*models.TokenPrice) error {
	log.Debugf("SetPrices size[%v]", len(prices))
	if s == nil || s.client == nil {
		return errors.New("redis client is nil")
	}

	var valueList []interface{}
	for _, price := range prices {
		if price == nil || price.Symbol == "" {
			// Nothing to set, ignored
			continue
		}
		priceVal, err := json.Marshal(price)
		if err != nil {
			return errors.Wrap(err, "marshal price error")
		}
		valueList = append(valueList, getPriceField(price.Symbol), priceVal)
	}
	if len(valueList) == 0 {
		return nil
	}
	err := s.client.HSet(ctx, s.key(tokenPriceHashKey), valueList...).Err()
	if err != nil {
		return errors.Wrap(err, "SetPrices redis HSet error")
	}
	return nil
}

// GetPrices returns every stored price sorted by symbol.
func (s *redisStorageImpl) GetPrices(ctx context.Context) ([]*models.TokenPrice, error) {
	if s == nil || s.client == nil {
		return nil, errors.New("redis client is nil")
	}

	redisResult, err := s.client.HGetAll(ctx, s.key(tokenPriceHashKey)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "GetPrices redis HGetAll error")
	}

	priceList := make([]*models.TokenPrice, 0, len(redisResult))
	for field, res := range redisResult {
		price := &models.TokenPrice{}
		if err := json.Unmarshal([]byte(res), price); err != nil {
			log.Infof("cannot unmarshal price object[%v] of [%v] error[%v]", res, field, err)
			continue
		}
		priceList = append(priceList, price)
	}
	sort.Slice(priceList, func(i, j int) bool { return priceList[i].Symbol < priceList[j].Symbol })

	if s.mockPrice {
		for _, price := range priceList {
			price.Price = rand.Float64() //nolint:gosec
			price.Time = time.Now().UnixMilli()
		}
	}
	return priceList, nil
}

// SetPreferences stores the selected account and DAO.
func (s *redisStorageImpl) SetPreferences(ctx context.Context, prefs *models.Preferences) error {
	if prefs == nil {
		return errors.Wrap(gerror.ErrMissingParams, "preferences")
	}
	val, err := json.Marshal(prefs)
	if err != nil {
		return errors.Wrap(err, "marshal preferences error")
	}
	if err := s.client.Set(ctx, s.key(preferencesKey), val, 0).Err(); err != nil {
		return errors.Wrap(err, "SetPreferences redis Set error")
	}
	return nil
}

// GetPreferences returns gerror.ErrStorageNotFound when nothing was stored.
func (s *redisStorageImpl) GetPreferences(ctx context.Context) (*models.Preferences, error) {
	res, err := s.client.Get(ctx, s.key(preferencesKey)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, gerror.ErrStorageNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "GetPreferences redis Get error")
	}
	prefs := &models.Preferences{}
	if err := json.Unmarshal([]byte(res), prefs); err != nil {
		return nil, errors.Wrap(err, "unmarshal preferences error")
	}
	return prefs, nil
}

func (s *redisStorageImpl) Close() error {
	return s.client.Close()
}

func getPriceField(symbol string) string {
	return strings.ToLower(symbol)
}

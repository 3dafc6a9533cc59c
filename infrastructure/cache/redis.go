package cache

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dealer-crm-api/internal/config"
	"github.com/vfg2006/dealer-crm-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const keyPrefix = "dealer-crm:snapshot:"

type RedisSnapshotCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisSnapshotCache(ctx context.Context, cfg config.Cache) (*RedisSnapshotCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "error pinging redis")
	}

	return NewRedisSnapshotCacheWithClient(client, cfg.TTL), nil
}

func NewRedisSnapshotCacheWithClient(client redis.UniversalClient, ttl time.Duration) *RedisSnapshotCache {
	return &RedisSnapshotCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RedisSnapshotCache) Get(ctx context.Context, baseID string) (*domain.ClientData, bool) {
	payload, err := c.client.Get(ctx, keyPrefix+baseID).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logrus.WithError(err).WithField("client_base_id", baseID).Warn("Error reading snapshot from Redis")
		}
		return nil, false
	}

	var data domain.ClientData
	if err := json.Unmarshal(payload, &data); err != nil {
		logrus.WithError(err).WithField("client_base_id", baseID).Warn("Discarding unreadable snapshot")
		return nil, false
	}

	return &data, true
}

func (c *RedisSnapshotCache) Set(ctx context.Context, baseID string, data *domain.ClientData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "error encoding snapshot")
	}

	return c.client.Set(ctx, keyPrefix+baseID, payload, c.ttl).Err()
}

func (c *RedisSnapshotCache) Delete(ctx context.Context, baseID string) error {
	return c.client.Del(ctx, keyPrefix+baseID).Err()
}

// Ping reports whether Redis is reachable.
func (c *RedisSnapshotCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

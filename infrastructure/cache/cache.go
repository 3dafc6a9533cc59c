package cache

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dealer-crm-api/internal/config"
	"github.com/vfg2006/dealer-crm-api/internal/domain"
)

const (
	DriverRedis  = "redis"
	DriverMemory = "memory"
	DriverNone   = "none"
)

// SnapshotCache stores client snapshots keyed by base ID.
type SnapshotCache interface {
	Get(ctx context.Context, baseID string) (*domain.ClientData, bool)
	Set(ctx context.Context, baseID string, data *domain.ClientData) error
	Delete(ctx context.Context, baseID string) error
}

// New builds the cache selected by configuration. A Redis cache that cannot
// be reached falls back to the in-memory one.
func New(ctx context.Context, cfg config.Cache) SnapshotCache {
	switch strings.ToLower(cfg.Driver) {
	case DriverRedis:
		redisCache, err := NewRedisSnapshotCache(ctx, cfg)
		if err == nil {
			logrus.WithField("addr", cfg.RedisAddr).Info("Snapshot cache backed by Redis")
			return redisCache
		}
		logrus.WithError(err).Warn("Redis unavailable, using in-memory snapshot cache")
		return newMemory(ctx, cfg)
	case DriverNone:
		logrus.Info("Snapshot cache disabled")
		return NoopSnapshotCache{}
	default:
		return newMemory(ctx, cfg)
	}
}

func newMemory(ctx context.Context, cfg config.Cache) *MemorySnapshotCache {
	c := NewMemorySnapshotCache(cfg.MemoryMaxSize, cfg.TTL)
	c.startJanitor(ctx, cfg.TTL)
	return c
}

type NoopSnapshotCache struct{}

func (NoopSnapshotCache) Get(context.Context, string) (*domain.ClientData, bool) { return nil, false }
func (NoopSnapshotCache) Set(context.Context, string, *domain.ClientData) error  { return nil }
func (NoopSnapshotCache) Delete(context.Context, string) error                   { return nil }

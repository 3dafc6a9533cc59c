package cache

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dealer-crm-api/internal/domain"
)

type MemorySnapshotCache struct {
	lru *LRUCache[*domain.ClientData]
}

func NewMemorySnapshotCache(maxSize int, ttl time.Duration) *MemorySnapshotCache {
	return &MemorySnapshotCache{lru: NewLRUCache[*domain.ClientData](maxSize, ttl)}
}

func (c *MemorySnapshotCache) Get(_ context.Context, baseID string) (*domain.ClientData, bool) {
	return c.lru.Get(baseID)
}

func (c *MemorySnapshotCache) Set(_ context.Context, baseID string, data *domain.ClientData) error {
	c.lru.Set(baseID, data)
	return nil
}

func (c *MemorySnapshotCache) Delete(_ context.Context, baseID string) error {
	c.lru.Delete(baseID)
	return nil
}

// startJanitor sweeps expired snapshots every interval until ctx is done.
func (c *MemorySnapshotCache) startJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := c.lru.CleanExpired(); removed > 0 {
					logrus.WithField("removed", removed).Debug("Expired snapshots evicted")
				}
			}
		}
	}()
}

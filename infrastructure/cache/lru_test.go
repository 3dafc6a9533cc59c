package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/dealer-crm-api/internal/config"
	"github.com/vfg2006/dealer-crm-api/internal/domain"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestLRU(maxSize int, ttl time.Duration) (*LRUCache[string], *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)}
	c := NewLRUCache[string](maxSize, ttl)
	c.now = clock.Now
	return c, clock
}

func TestLRUCache_Expiry(t *testing.T) {
	c, clock := newTestLRU(10, time.Minute)

	c.Set("a", "alpha")

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "alpha", got)

	clock.Advance(time.Minute)
	_, ok = c.Get("a")
	assert.True(t, ok, "entry is still valid at exactly ttl")

	clock.Advance(time.Second)
	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Size())
}

func TestLRUCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c, _ := newTestLRU(2, time.Hour)

	c.Set("a", "1")
	c.Set("b", "2")
	_, _ = c.Get("a")
	c.Set("c", "3")

	_, ok := c.Get("b")
	assert.False(t, ok)

	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Size())
}

func TestLRUCache_OverwriteRefreshesTTL(t *testing.T) {
	c, clock := newTestLRU(2, time.Minute)

	c.Set("a", "old")
	clock.Advance(50 * time.Second)
	c.Set("a", "new")
	clock.Advance(50 * time.Second)

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "new", got)
	assert.Equal(t, 1, c.Size())
}

func TestLRUCache_CleanExpired(t *testing.T) {
	c, clock := newTestLRU(10, time.Minute)

	c.Set("a", "1")
	clock.Advance(30 * time.Second)
	c.Set("b", "2")
	clock.Advance(45 * time.Second)

	assert.Equal(t, 1, c.CleanExpired())
	assert.Equal(t, 1, c.Size())

	c.Delete("b")
	assert.Equal(t, 0, c.Size())
}

func TestMemorySnapshotCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemorySnapshotCache(4, time.Minute)

	data := &domain.ClientData{Leads: []domain.LeadRecord{{ID: "rec1"}}}
	require.NoError(t, c.Set(ctx, "appNorth", data))

	got, ok := c.Get(ctx, "appNorth")
	require.True(t, ok)
	assert.Same(t, data, got)

	require.NoError(t, c.Delete(ctx, "appNorth"))
	_, ok = c.Get(ctx, "appNorth")
	assert.False(t, ok)
}

func TestNew_SelectsDriver(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.IsType(t, NoopSnapshotCache{}, New(ctx, config.Cache{Driver: "none"}))
	assert.IsType(t, &MemorySnapshotCache{}, New(ctx, config.Cache{Driver: "memory", MemoryMaxSize: 8, TTL: time.Minute}))
	assert.IsType(t, &MemorySnapshotCache{}, New(ctx, config.Cache{Driver: ""}))
}

func TestNoopSnapshotCache(t *testing.T) {
	ctx := context.Background()
	c := NoopSnapshotCache{}

	require.NoError(t, c.Set(ctx, "appNorth", &domain.ClientData{}))
	_, ok := c.Get(ctx, "appNorth")
	assert.False(t, ok)
}

package harvest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonesrussell/goleads/internal/config"
	"github.com/jonesrussell/goleads/internal/logger"
)

const (
	seenKeyPrefix  = "goleads:seen:"
	defaultSeenTTL = 30 * 24 * time.Hour

	// memorySeenLimit caps the fallback cache so a long-lived process does
	// not grow without bound.
	memorySeenLimit = 100_000
)

// SeenCache answers "has this dedup key been harvested before". It is
// advisory: a miss is always safe because the database constraint is
// authoritative.
type SeenCache interface {
	Seen(ctx context.Context, key string) bool
	MarkSeen(ctx context.Context, keys []string)
	Close() error
}

// NewSeenCache returns a Redis-backed cache when configured, otherwise an
// in-process one.
func NewSeenCache(cfg config.RedisConfig, log logger.Logger) SeenCache {
	if !cfg.Enabled {
		return newMemorySeenCache()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultSeenTTL
	}

	return &redisSeenCache{
		client: client,
		ttl:    ttl,
		logger: log,
	}
}

// redisSeenCache keeps dedup keys in Redis with a TTL. Errors are logged
// and treated as "not seen".
type redisSeenCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func (c *redisSeenCache) Seen(ctx context.Context, key string) bool {
	n, err := c.client.Exists(ctx, seenKeyPrefix+key).Result()
	if err != nil {
		c.logger.Warn("seen-cache lookup failed", logger.Error(err))
		return false
	}
	return n > 0
}

func (c *redisSeenCache) MarkSeen(ctx context.Context, keys []string) {
	if len(keys) == 0 {
		return
	}

	pipe := c.client.Pipeline()
	for _, key := range keys {
		pipe.Set(ctx, seenKeyPrefix+key, "1", c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("seen-cache update failed", logger.Error(err))
	}
}

func (c *redisSeenCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("close seen cache: %w", err)
	}
	return nil
}

// memorySeenCache is the in-process fallback. When full it drops the whole
// map rather than tracking recency, which only costs some duplicate upserts.
type memorySeenCache struct {
	mu   sync.RWMutex
	keys map[string]struct{}
}

func newMemorySeenCache() *memorySeenCache {
	return &memorySeenCache{keys: make(map[string]struct{})}
}

func (c *memorySeenCache) Seen(_ context.Context, key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.keys[key]
	return ok
}

func (c *memorySeenCache) MarkSeen(_ context.Context, keys []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.keys)+len(keys) > memorySeenLimit {
		c.keys = make(map[string]struct{}, len(keys))
	}
	for _, key := range keys {
		c.keys[key] = struct{}{}
	}
}

func (c *memorySeenCache) Close() error { return nil }

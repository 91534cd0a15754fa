// Package registrycache persists entity registry seeds in Redis so a
// rebuilt process can warm its resolver without re-reading seed files.
package registrycache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alvarosantos/reconlens-engine/internal/entities"
	"github.com/alvarosantos/reconlens-engine/pkg/config"
	"github.com/redis/go-redis/v9"
)

const (
	keyNamespace   = "reconlens"
	registryPrefix = "entity_registry"

	// DefaultTTL bounds staleness of a cached seed. Callers that reseed
	// on a schedule can pass their own TTL to Store.
	DefaultTTL = 24 * time.Hour
)

// ErrNotCached reports that no seed snapshot is stored.
var ErrNotCached = errors.New("entity registry not cached")

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// Cache stores resolver seed snapshots as JSON blobs under a namespaced key.
type Cache struct {
	store cmdable
	ttl   time.Duration
}

// New bootstraps a seed cache against Redis and verifies connectivity.
func New(ctx context.Context, cfg config.RedisConfig) (*Cache, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Cache{store: raw, ttl: DefaultTTL}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url or address is required")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.MinIdleConns == 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	return opts, nil
}

// Key returns the namespaced key a registry snapshot is stored under.
func (c *Cache) Key(registry string) string {
	if registry == "" {
		registry = "default"
	}
	return fmt.Sprintf("%s:%s:%s", keyNamespace, registryPrefix, registry)
}

// Store writes the seed snapshot with the cache's TTL.
func (c *Cache) Store(ctx context.Context, registry string, seed entities.Seed) error {
	if c.store == nil {
		return errors.New("redis client not initialized")
	}
	raw, err := json.Marshal(seed)
	if err != nil {
		return fmt.Errorf("encoding entity seed: %w", err)
	}
	return c.store.Set(ctx, c.Key(registry), string(raw), c.ttl).Err()
}

// Load reads a stored seed snapshot. ErrNotCached is returned when the
// key is absent or expired.
func (c *Cache) Load(ctx context.Context, registry string) (entities.Seed, error) {
	if c.store == nil {
		return entities.Seed{}, errors.New("redis client not initialized")
	}
	raw, err := c.store.Get(ctx, c.Key(registry)).Result()
	if errors.Is(err, redis.Nil) {
		return entities.Seed{}, ErrNotCached
	}
	if err != nil {
		return entities.Seed{}, err
	}
	var seed entities.Seed
	if err := json.Unmarshal([]byte(raw), &seed); err != nil {
		return entities.Seed{}, fmt.Errorf("decoding entity seed: %w", err)
	}
	return seed, nil
}

// Invalidate drops a stored snapshot.
func (c *Cache) Invalidate(ctx context.Context, registry string) error {
	if c.store == nil {
		return errors.New("redis client not initialized")
	}
	return c.store.Del(ctx, c.Key(registry)).Err()
}

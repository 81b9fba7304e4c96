// Package cache is an explicit, advisory cache keyed by (resource,
// params). It replaces the console's old module-level cache object: every
// entry names the resource it belongs to and mutations invalidate by key,
// never by flushing the world.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"gudam.org/internal/access"
)

// Key addresses one cache entry.
type Key struct {
	Resource string
	Params   string
}

func (k Key) String() string {
	return k.Resource + ":" + k.Params
}

// Cache stores opaque values in Redis with a TTL. A nil client disables
// the cache entirely; every Get misses and every Set is a no-op, which is
// the correct advisory behavior when Redis is not deployed.
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// New constructs a Cache. The prefix namespaces keys so several services
// can share one Redis.
func New(client *redis.Client, prefix string, ttl time.Duration) *Cache {
	if prefix == "" {
		prefix = "gudam:"
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cache{client: client, prefix: prefix, ttl: ttl}
}

// Enabled reports whether a backing client is configured.
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// Get returns the cached value for the key, if present and fresh.
func (c *Cache) Get(ctx context.Context, key Key) ([]byte, bool) {
	if !c.Enabled() {
		return nil, false
	}
	data, err := c.client.Get(ctx, c.prefix+key.String()).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores the value under the key. Failures are swallowed; the cache
// is advisory and the caller already holds the authoritative data.
func (c *Cache) Set(ctx context.Context, key Key, value []byte) {
	if !c.Enabled() {
		return
	}
	_ = c.client.Set(ctx, c.prefix+key.String(), value, c.ttl).Err()
}

// Invalidate removes the entry for the key.
func (c *Cache) Invalidate(ctx context.Context, key Key) {
	if !c.Enabled() {
		return
	}
	_ = c.client.Del(ctx, c.prefix+key.String()).Err()
}

const effectiveResource = "effective_permissions"

// Permissions adapts Cache to the resolver's advisory cache interface,
// storing one entry per user under the effective_permissions resource.
type Permissions struct {
	cache *Cache
}

var _ access.PermissionCache = (*Permissions)(nil)

// NewPermissions wraps a Cache for effective-permission entries.
func NewPermissions(cache *Cache) *Permissions {
	return &Permissions{cache: cache}
}

func (p *Permissions) key(userID string) Key {
	return Key{Resource: effectiveResource, Params: userID}
}

// GetEffective returns the cached aggregate for the user, if any.
func (p *Permissions) GetEffective(ctx context.Context, userID string) (access.EffectivePermissions, bool) {
	data, ok := p.cache.Get(ctx, p.key(userID))
	if !ok {
		return access.EffectivePermissions{}, false
	}
	var eff access.EffectivePermissions
	if err := eff.UnmarshalJSON(data); err != nil {
		// A corrupt entry must not poison decisions; drop it and refetch.
		p.cache.Invalidate(ctx, p.key(userID))
		return access.EffectivePermissions{}, false
	}
	return eff, true
}

// SetEffective stores the aggregate for the user.
func (p *Permissions) SetEffective(ctx context.Context, userID string, eff access.EffectivePermissions) {
	data, err := eff.MarshalJSON()
	if err != nil {
		return
	}
	p.cache.Set(ctx, p.key(userID), data)
}

// InvalidateUser drops the user's cached aggregate.
func (p *Permissions) InvalidateUser(ctx context.Context, userID string) {
	p.cache.Invalidate(ctx, p.key(userID))
}

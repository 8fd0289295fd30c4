// Package cache implements the Redis-backed query result cache. Cached
// entries are keyed by a fingerprint of the query plus a generation counter;
// invalidation bumps the counter, which orphans every older entry and lets
// the TTL reclaim it.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ibrahimsohofi/droguerie/internal/domain"
)

const (
	generationKey = "catalog:gen"
	resultPrefix  = "catalog:q:"
)

// QueryCache stores catalog query results in Redis.
type QueryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewQueryCache creates a query cache with the given entry TTL.
func NewQueryCache(client *redis.Client, ttl time.Duration) *QueryCache {
	return &QueryCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached result for the query, or (nil, false) on a miss.
// Redis errors degrade to a miss so the read path never depends on the cache.
func (c *QueryCache) Get(ctx context.Context, q *domain.Query) (*domain.QueryResult, bool) {
	key, err := c.resultKey(ctx, q)
	if err != nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var result domain.QueryResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false
	}

	return &result, true
}

// Set stores a query result under the current generation.
func (c *QueryCache) Set(ctx context.Context, q *domain.Query, result *domain.QueryResult) error {
	key, err := c.resultKey(ctx, q)
	if err != nil {
		return err
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal query result: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set query result: %w", err)
	}

	return nil
}

// Invalidate bumps the generation counter. Every cached entry becomes
// unreachable at once; expiry cleans them up.
func (c *QueryCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("redis incr generation: %w", err)
	}
	return nil
}

func (c *QueryCache) resultKey(ctx context.Context, q *domain.Query) (string, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("redis get generation: %w", err)
	}

	return fmt.Sprintf("%s%d:%s", resultPrefix, gen, Fingerprint(q)), nil
}

// Fingerprint derives a deterministic cache key component from a query.
func Fingerprint(q *domain.Query) string {
	data, err := json.Marshal(q)
	if err != nil {
		// Query is a plain value struct; marshal cannot fail in practice.
		return "unmarshalable"
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

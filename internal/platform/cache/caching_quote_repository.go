// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"quote_backend/internal/feature/quotes/domain/entity"
	"quote_backend/internal/feature/quotes/usecase"
)

// CachingQuoteRepository decorates a QuoteRepository with a Redis read-through cache of List.
// Writes go straight to the inner repository, then bump the user's version counter and drop the entry.
//
// Every cached list carries the version that was current before its database read. A list is only
// served while that version is still current, so a refill racing a write can never outlive the write.
type CachingQuoteRepository struct {
	inner     usecase.QuoteRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.QuoteRepository = (*CachingQuoteRepository)(nil)

// NewCachingQuoteRepository decorates a QuoteRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "quotes".
// A nil rdb disables caching entirely.
func NewCachingQuoteRepository(rdb *redis.Client, ttl time.Duration, inner usecase.QuoteRepository, namespace string) *CachingQuoteRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "quotes"
	}
	return &CachingQuoteRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Append writes through to the inner repository and invalidates the user's list.
func (c *CachingQuoteRepository) Append(ctx context.Context, userID string, quotes []entity.Quote) (*entity.QuoteCollection, error) {
	col, err := c.inner.Append(ctx, userID, quotes)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, userID)
	return col, nil
}

// Remove writes through to the inner repository and invalidates the user's list.
func (c *CachingQuoteRepository) Remove(ctx context.Context, userID string, target entity.Quote) (int64, error) {
	n, err := c.inner.Remove(ctx, userID, target)
	if err != nil {
		return 0, err
	}
	c.invalidate(ctx, userID)
	return n, nil
}

// cachedList is the stored form of a user's list.
type cachedList struct {
	Version int64          `json:"v"`
	Quotes  []entity.Quote `json:"quotes"`
}

// List retrieves quotes, checking cache first then falling back to the database.
func (c *CachingQuoteRepository) List(ctx context.Context, userID string) ([]entity.Quote, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.List(ctx, userID)
	}

	key, verKey := c.cacheKey(userID), c.versionKey(userID)

	// 1) Check cache and the current version together
	vals, err := c.rdb.MGet(ctx, key, verKey).Result()
	if err != nil || len(vals) != 2 {
		// Without a version the result cannot be tagged, so skip caching this round
		return c.inner.List(ctx, userID)
	}
	version, ok := parseVersion(vals[1])
	if !ok {
		return c.inner.List(ctx, userID)
	}
	if raw, isStr := vals[0].(string); isStr && raw != "" {
		var hit cachedList
		if err := json.Unmarshal([]byte(raw), &hit); err != nil {
			// Delete corrupted cache entry
			_ = c.rdb.Del(ctx, key).Err()
		} else if hit.Version == version {
			if hit.Quotes == nil {
				hit.Quotes = []entity.Quote{}
			}
			return hit.Quotes, nil
		}
	}

	// 2) Fallback to database
	out, err := c.inner.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []entity.Quote{}
	}

	// 3) Store in cache tagged with the version read before the database (best effort)
	if b, err := json.Marshal(cachedList{Version: version, Quotes: out}); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// invalidate bumps the version so in-flight refills are never served, then drops the cached list.
// Failure only delays freshness until the TTL expires.
func (c *CachingQuoteRepository) invalidate(ctx context.Context, userID string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Incr(ctx, c.versionKey(userID)).Err(); err != nil {
		slog.Warn("failed to bump quote cache version", "user_id", userID, "error", err)
	}
	if err := c.rdb.Del(ctx, c.cacheKey(userID)).Err(); err != nil {
		slog.Warn("failed to invalidate quote cache", "user_id", userID, "error", err)
	}
}

// parseVersion reads the counter stored by INCR. A missing counter is version 0.
func parseVersion(v any) (int64, bool) {
	switch s := v.(type) {
	case nil:
		return 0, true
	case string:
		n, err := strconv.ParseInt(s, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// cacheKey generates the cache key for a user's list.
func (c *CachingQuoteRepository) cacheKey(userID string) string {
	return fmt.Sprintf("%s:%s", c.namespace, safe(userID))
}

// versionKey holds the user's write counter. It has no TTL so a refill that stalls longer than
// the list TTL still sees a newer version.
func (c *CachingQuoteRepository) versionKey(userID string) string {
	return c.cacheKey(userID) + ":ver"
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}

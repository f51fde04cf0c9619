// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// post.go provides a Valkey-backed cache for post-by-slug responses.
// The JSON body served for a slug is stored so repeat reads skip the
// post and category queries entirely. Every post or category mutation
// invalidates the affected entries, so the cache never changes the
// observable results, only their cost.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// postKeyPrefix is the Valkey key prefix for cached post responses.
	postKeyPrefix = "post:"

	// DefaultPostTTL is how long a cached response stays without being
	// invalidated. A backstop only; mutations invalidate explicitly.
	DefaultPostTTL = 5 * time.Minute
)

// PostCache caches serialized post responses in Valkey, keyed by slug.
// A nil *PostCache is valid and disables caching, so callers do not need
// to branch on whether Valkey is configured.
type PostCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPostCache creates a post cache backed by the given Valkey client.
func NewPostCache(client *redis.Client, ttl time.Duration) *PostCache {
	if ttl == 0 {
		ttl = DefaultPostTTL
	}
	return &PostCache{client: client, ttl: ttl}
}

// Get retrieves the cached response body for a slug. Returns false on miss.
func (pc *PostCache) Get(ctx context.Context, slug string) ([]byte, bool) {
	if pc == nil {
		return nil, false
	}
	val, err := pc.client.Get(ctx, postKeyPrefix+slug).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("post cache get error", "slug", slug, "error", err)
		return nil, false
	}
	slog.Debug("post cache hit", "slug", slug)
	return val, true
}

// Set stores a response body for a slug with the configured TTL.
func (pc *PostCache) Set(ctx context.Context, slug string, body []byte) {
	if pc == nil {
		return
	}
	if err := pc.client.Set(ctx, postKeyPrefix+slug, body, pc.ttl).Err(); err != nil {
		slog.Warn("post cache set error", "slug", slug, "error", err)
	}
}

// Invalidate removes the cached entries for the given slugs.
func (pc *PostCache) Invalidate(ctx context.Context, slugs ...string) {
	if pc == nil {
		return
	}
	for _, slug := range slugs {
		if err := pc.client.Del(ctx, postKeyPrefix+slug).Err(); err != nil {
			slog.Warn("post cache invalidate error", "slug", slug, "error", err)
		}
	}
	slog.Debug("post cache invalidated", "slugs", slugs)
}

// InvalidateAll removes every cached post by scanning for the prefix.
// Used on category mutations, since category names and slugs are embedded
// in cached post responses and any post could be affected.
func (pc *PostCache) InvalidateAll(ctx context.Context) {
	if pc == nil {
		return
	}
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := pc.client.Scan(ctx, cursor, postKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("post cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := pc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("post cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("post cache fully cleared", "deleted", deleted)
	}
}

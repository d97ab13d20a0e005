// Package cache provides an optional Redis-backed cache for match
// responses. Keys incorporate the corpus version, so a corpus reload
// invalidates prior entries implicitly.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds staleness of cached match responses.
const DefaultTTL = 5 * time.Minute

// MatchCache caches serialized match responses. A nil *MatchCache is a
// valid no-op cache, so callers never branch on whether Redis is
// configured.
type MatchCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis at addr. An empty addr disables caching by
// returning nil.
func New(ctx context.Context, addr string, ttl time.Duration) (*MatchCache, error) {
	if addr == "" {
		return nil, nil
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &MatchCache{client: client, ttl: ttl}, nil
}

// Key derives a cache key from the corpus version and the full match
// request.
func Key(corpusVersion, resumeText string, weightTFIDF, weightSkills float64, topK int) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%.6f|%.6f|%d|", corpusVersion, weightTFIDF, weightSkills, topK)
	h.Write([]byte(resumeText))
	return "jobmatch:match:" + hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached response for key, or nil on a miss. Cache
// failures are reported so callers can log and fall through to a fresh
// computation.
func (c *MatchCache) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read match cache: %w", err)
	}
	return data, nil
}

// Set stores a serialized response under key with the configured TTL.
func (c *MatchCache) Set(ctx context.Context, key string, payload []byte) error {
	if c == nil {
		return nil
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write match cache: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func (c *MatchCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

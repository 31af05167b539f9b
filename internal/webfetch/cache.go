package webfetch

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"outreach-backend/internal/shared/telemetry"
)

// RedisCache keeps reduced page text in Redis for a fixed TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to redisURL (redis://host:6379/0) and verifies it with PING.
func NewRedisCache(ctx context.Context, redisURL string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("page cache: invalid redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("page cache: redis ping failed: %w", err)
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &RedisCache{client: client, ttl: ttl}, nil
}

// Get returns the cached text for pageURL. Redis errors count as a miss.
func (c *RedisCache) Get(ctx context.Context, pageURL string) (string, bool) {
	text, err := c.client.Get(ctx, pageKey(pageURL)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			telemetry.Warn("webfetch.cache.get_failed", map[string]any{"url": pageURL, "error": err})
		}
		return "", false
	}
	return text, true
}

// Set stores text for pageURL with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, pageURL, text string) error {
	return c.client.Set(ctx, pageKey(pageURL), text, c.ttl).Err()
}

// PingContext checks the Redis connection.
func (c *RedisCache) PingContext(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func pageKey(pageURL string) string {
	sum := sha256.Sum256([]byte(pageURL))
	return fmt.Sprintf("outreach:page:%x", sum[:16])
}

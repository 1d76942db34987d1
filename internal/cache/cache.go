// Package cache is the redis layer behind the entity read-through cache and
// the token denylist. Every operation degrades to a miss or a no-op when
// redis is unreachable; the API stays correct without it, only slower, and
// a nil *Client behaves the same way.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps a redis connection with the degrade-to-miss behavior above.
type Client struct {
	client *redis.Client
}

// New connects to redis at addr. The connection is lazy; a wrong address
// shows up as every lookup missing, not as a startup failure.
func New(addr, password string, db int) *Client {
	return &Client{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// Get returns the stored value, or nil for a missing key, an unreachable
// redis, or a nil client.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and transport errors alike read as a miss
		return nil, nil
	}
	return data, nil
}

// Set stores a value with a TTL. Write failures are dropped; the value is
// re-cached on the next read.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	_ = c.client.Set(ctx, key, value, ttl).Err()
	return nil
}

// Delete removes a key, ignoring failures. Stale entries age out via TTL.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil || c.client == nil {
		return nil
	}
	_ = c.client.Del(ctx, key).Err()
	return nil
}

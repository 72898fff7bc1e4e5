package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"carpool-service/pkg/logger"
)

// Client wraps the Redis connection.
type Client struct {
	rdb *goredis.Client
}

// NewClient connects to Redis with retry.
func NewClient(addr, password string, log logger.ILogger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{Addr: addr, Password: password})
	for i := 0; i < 20; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(ctx).Err(); err == nil {
			cancel()
			log.Info("connected to Redis")
			return &Client{rdb: rdb}, nil
		}
		cancel()
		log.Warning("waiting for Redis", logger.Int("attempt", i+1))
		time.Sleep(2 * time.Second)
	}
	return nil, fmt.Errorf("redis: failed to connect after 20 attempts")
}

// ---- Sessions ----
//
// A login registers its token's jti here with the token TTL; logout deletes
// it. A token whose jti is gone is treated as logged out regardless of its
// signature.

// StoreSession registers a session key for a user.
func (c *Client) StoreSession(ctx context.Context, jti, userID string, ttl time.Duration) error {
	return c.rdb.Set(ctx, "session:"+jti, userID, ttl).Err()
}

// SessionExists reports whether a session key is still live.
func (c *Client) SessionExists(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, "session:"+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteSession removes a session key (logout).
func (c *Client) DeleteSession(ctx context.Context, jti string) error {
	return c.rdb.Del(ctx, "session:"+jti).Err()
}

// ---- Ride cache ----

// CacheRide stores a serialised ride-with-details payload with TTL.
func (c *Client) CacheRide(ctx context.Context, rideID string, data []byte) error {
	return c.rdb.Set(ctx, "ride:"+rideID, data, time.Hour).Err()
}

// GetCachedRide retrieves a cached ride payload; nil when absent.
func (c *Client) GetCachedRide(ctx context.Context, rideID string) ([]byte, error) {
	data, err := c.rdb.Get(ctx, "ride:"+rideID).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	return data, err
}

// InvalidateRide drops a ride's cache entry (seat counts changed).
func (c *Client) InvalidateRide(ctx context.Context, rideID string) error {
	return c.rdb.Del(ctx, "ride:"+rideID).Err()
}

// Close tears down the Redis connection.
func (c *Client) Close() error { return c.rdb.Close() }

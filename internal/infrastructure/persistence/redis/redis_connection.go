// Package redis provides the Redis connection and the usage counter store.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aimuhasebi/platform/internal/config"
	"github.com/aimuhasebi/platform/pkg/errors"
	"github.com/aimuhasebi/platform/pkg/logger"
)

// Connection manages the Redis client lifecycle. A UniversalClient covers
// both standalone and cluster deployments from the same configuration.
type Connection struct {
	client redis.UniversalClient
	log    logger.Logger
}

// NewConnection creates the Redis client and verifies connectivity.
func NewConnection(ctx context.Context, cfg *config.RedisConfig, log logger.Logger) (*Connection, error) {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        cfg.Addresses,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "redis ping failed")
	}

	log.Info(ctx, "Redis connection established",
		logger.Any("addresses", cfg.Addresses),
		logger.Int("pool_size", cfg.PoolSize),
	)

	return &Connection{client: client, log: log.WithComponent("redis")}, nil
}

// Client returns the Redis client for store construction.
func (c *Connection) Client() redis.UniversalClient {
	return c.client
}

// Ping checks Redis connectivity.
func (c *Connection) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		c.log.Error(ctx, "Redis ping failed", err)
		return errors.Wrap(err, "redis ping failed")
	}
	return nil
}

// Close releases the client and its pool.
func (c *Connection) Close() error {
	c.log.Info(context.Background(), "Closing Redis connection")
	return c.client.Close()
}

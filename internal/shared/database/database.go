package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront/internal/shared/config"
	"storefront/pkg/logger"
)

// DB holds the storefront's own storage. The collaborator owns every durable
// record, so the only connection is the optional Redis used for the catalog
// cache, navigation contexts and rate limiting.
type DB struct {
	Redis *redis.Client
}

// InitDB opens the configured connections. With Redis disabled it returns an
// empty DB and callers fall back to in-process stores.
func InitDB(cfg *config.Config) (*DB, error) {
	if !cfg.Redis.Enabled {
		logger.GetDefault().Info("Redis disabled, using in-memory stores")
		return &DB{}, nil
	}

	rdb, err := initRedis(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}
	return &DB{Redis: rdb}, nil
}

// initRedis initializes Redis connection
func initRedis(cfg *config.Config) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,

		// Connection pool settings
		PoolSize:     10,
		MinIdleConns: 5,

		// Timeouts
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.GetDefault().Info("✅ Redis connected successfully", "addr", cfg.Redis.Addr)
	return rdb, nil
}

// Close closes all open connections
func (db *DB) Close() error {
	if db == nil || db.Redis == nil {
		return nil
	}
	if err := db.Redis.Close(); err != nil {
		return fmt.Errorf("failed to close Redis: %w", err)
	}
	logger.GetDefault().Info("✅ All database connections closed")
	return nil
}

// HealthCheck pings every open connection
func (db *DB) HealthCheck(ctx context.Context) error {
	if db == nil || db.Redis == nil {
		return nil
	}
	if err := db.Redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// GetRedisClient returns the Redis client, nil when Redis is disabled
func (db *DB) GetRedisClient() *redis.Client {
	if db == nil {
		return nil
	}
	return db.Redis
}

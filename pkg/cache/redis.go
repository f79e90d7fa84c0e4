package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AinaRoxane/Wallet/internal/config"
)

// ErrNotFound is returned when a key is not found in cache
var ErrNotFound = errors.New("key not found in cache")

// RedisClient wraps the Redis connection with JSON marshalling helpers.
type RedisClient struct {
	client *redis.Client
	config config.CacheConfig
}

func NewRedisClient(cfg config.CacheConfig) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{client: rdb, config: cfg}, nil
}

// Set stores a value with TTL
func (r *RedisClient) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

// Get retrieves a value and unmarshals it
func (r *RedisClient) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get key %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}
	return nil
}

// Delete removes keys
func (r *RedisClient) Delete(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

// Valuation cache helpers. Valuations are keyed by user id and expire
// quickly; the cache only smooths bursts, it is never the source of
// truth, and the short TTL is the only staleness bound because balances
// are written by an external settlement process.

func (r *RedisClient) SetValuation(ctx context.Context, userID string, valuation interface{}) error {
	return r.Set(ctx, valuationKey(userID), valuation, r.config.ValuationTTL)
}

func (r *RedisClient) GetValuation(ctx context.Context, userID string, dest interface{}) error {
	return r.Get(ctx, valuationKey(userID), dest)
}

func valuationKey(userID string) string {
	return fmt.Sprintf("valuation:%s", userID)
}

// Feed list cache helpers.

func (r *RedisClient) SetFeeds(ctx context.Context, feeds interface{}) error {
	return r.Set(ctx, "feeds:all", feeds, r.config.FeedsTTL)
}

func (r *RedisClient) GetFeeds(ctx context.Context, dest interface{}) error {
	return r.Get(ctx, "feeds:all", dest)
}

func (r *RedisClient) InvalidateFeeds(ctx context.Context) error {
	return r.Delete(ctx, "feeds:all")
}

// Ping checks the Redis connection
func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (r *RedisClient) Close() error {
	return r.client.Close()
}

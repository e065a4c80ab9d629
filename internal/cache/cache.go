package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores JSON documents by key. Implementations fail safe: an
// unreachable backend behaves like a miss.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Redis wraps redis.Client. A nil *Redis is a valid, always-missing cache.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to redisURL and pings it
func NewRedis(ctx context.Context, redisURL string) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Printf("Successfully connected to Redis at %s", opts.Addr)
	return &Redis{client: client}, nil
}

// GetJSON decodes the value at key into dest and reports whether it was found
func (r *Redis) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if r == nil || r.client == nil {
		return false, nil
	}
	data, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		log.Printf("[Cache] get %s failed: %v", key, err)
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached %s: %w", key, err)
	}
	return true, nil
}

// SetJSON stores value under key, ignoring redis errors
func (r *Redis) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if r == nil || r.client == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Printf("[Cache] set %s failed: %v", key, err)
	}
	return nil
}

// Delete removes key, ignoring redis errors
func (r *Redis) Delete(ctx context.Context, key string) error {
	if r == nil || r.client == nil {
		return nil
	}
	if err := r.client.Del(ctx, key).Err(); err != nil {
		log.Printf("[Cache] delete %s failed: %v", key, err)
	}
	return nil
}

// Close releases the connection pool
func (r *Redis) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}

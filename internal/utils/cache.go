package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// GetCache retrieves a value from Redis and unmarshals it into dest
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// DeleteCache deletes a key from Redis
func DeleteCache(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err() // Delete key from Redis
}

// DenyToken puts a logged-out session token on the denylist until it would
// have expired anyway
func DenyToken(ctx context.Context, rdb *redis.Client, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // Token is already expired, nothing to deny
	}
	return rdb.Set(ctx, "denied:"+token, "1", ttl).Err() // Mark token as denied
}

// IsTokenDenied reports whether a token has been logged out. Redis being
// unreachable fails open so a cache outage does not lock everyone out.
func IsTokenDenied(ctx context.Context, rdb *redis.Client, token string) bool {
	_, err := rdb.Get(ctx, "denied:"+token).Result() // Look up the denylist entry
	return err == nil                                // Present means denied
}

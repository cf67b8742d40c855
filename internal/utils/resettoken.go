package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"time"          // Token TTL

	"github.com/redis/go-redis/v9" // Redis client
)

// resetTokenPrefix namespaces password reset tokens in Redis.
const resetTokenPrefix = "pwreset:"

// StoreResetToken stores a password reset token mapped to its user with
// a TTL; the token expires on its own if never consumed.
func StoreResetToken(ctx context.Context, rdb *redis.Client, token string, userID uint, ttl time.Duration) error {
	b, err := json.Marshal(userID) // Marshal user ID to JSON
	if err != nil {
		return err
	}
	return rdb.Set(ctx, resetTokenPrefix+token, b, ttl).Err() // Set token with TTL
}

// LookupResetToken resolves a reset token to its user ID. The second
// return is false when the token is unknown or expired.
func LookupResetToken(ctx context.Context, rdb *redis.Client, token string) (uint, bool, error) {
	val, err := rdb.Get(ctx, resetTokenPrefix+token).Result() // Get token from Redis
	if err == redis.Nil {
		return 0, false, nil // Token does not exist
	} else if err != nil {
		return 0, false, err // Other Redis error
	}
	var userID uint
	if err := json.Unmarshal([]byte(val), &userID); err != nil {
		return 0, false, err
	}
	return userID, true, nil
}

// DropResetToken removes a consumed reset token; tokens are single-use.
func DropResetToken(ctx context.Context, rdb *redis.Client, token string) error {
	return rdb.Del(ctx, resetTokenPrefix+token).Err() // Delete token from Redis
}

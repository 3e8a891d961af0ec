// Copyright (c) 2026 Votra. All rights reserved.
// Author: platform@votra.app

// Redis implementation of the OTP attempt limiter.
package login

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/votra-app/votra/internal/platform/constants"
)

/*
RedisAttemptLimiter counts OTP verification attempts per voter in Redis.

The counter and its expiry are set atomically through a small Lua script so
two concurrent attempts cannot create a key that never expires.
*/
type RedisAttemptLimiter struct {
	client *redis.Client
}

// attemptScript increments the voter's counter and stamps the window expiry
// on the first attempt of the window. Returns the running count.
var attemptScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`)

/*
NewRedisAttemptLimiter creates a limiter backed by the shared Redis client.

Parameters:
  - client: *redis.Client

Returns:
  - *RedisAttemptLimiter: Ready to use
*/
func NewRedisAttemptLimiter(client *redis.Client) *RedisAttemptLimiter {
	return &RedisAttemptLimiter{client: client}
}

// Allow increments the voter's attempt counter and reports whether the
// attempt budget for the current window still has room.
func (limiter *RedisAttemptLimiter) Allow(context context.Context, voterID string) (bool, error) {
	key := constants.RedisPrefixOTPAttempts + voterID

	count, err := attemptScript.Run(context, limiter.client, []string{key}, int(OTPAttemptWindow.Seconds())).Int64()
	if err != nil {
		return true, fmt.Errorf("increment otp attempts: %w", err)
	}

	return count <= MaxOTPAttempts, nil
}

// Reset clears the voter's attempt counter.
func (limiter *RedisAttemptLimiter) Reset(context context.Context, voterID string) error {
	key := constants.RedisPrefixOTPAttempts + voterID

	if err := limiter.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("reset otp attempts: %w", err)
	}
	return nil
}

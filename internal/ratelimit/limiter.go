// Package ratelimit implements a Redis-backed token bucket used to protect
// the order submission endpoint. When Redis is not configured the limiter is
// nil and every request is allowed.
package ratelimit

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"
)

const bucketScript = `
local rate = tonumber(ARGV[1])
local burst = tonumber(ARGV[2])

local t = redis.call("TIME")
local now = (t[1] * 1000) + math.floor(t[2] / 1000)

local state = redis.call("HMGET", KEYS[1], "tokens", "ts")
local tokens = tonumber(state[1])
local ts = tonumber(state[2])

if tokens == nil then
  tokens = burst
else
  local elapsed = math.max(now - ts, 0)
  tokens = math.min(burst, tokens + (elapsed / 1000) * rate)
end

local allowed = 0
if tokens >= 1 then
  allowed = 1
  tokens = tokens - 1
end

redis.call("HMSET", KEYS[1], "tokens", tokens, "ts", now)
redis.call("PEXPIRE", KEYS[1], ARGV[3])
return allowed
`

type Limiter struct {
	client *redis.Client
	script *redis.Script
	rate   float64
	burst  int
}

func NewLimiter(client *redis.Client, rate float64, burst int) *Limiter {
	if client == nil {
		return nil
	}
	if rate <= 0 {
		rate = 1
	}
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		client: client,
		script: redis.NewScript(bucketScript),
		rate:   rate,
		burst:  burst,
	}
}

// Allow consumes one token for key. A nil limiter always allows; a Redis
// failure also allows, since throttling is protection, not correctness.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	if l == nil || key == "" {
		return true, nil
	}

	ttl := time.Duration(float64(l.burst)/l.rate*2) * time.Second
	if ttl < time.Second {
		ttl = time.Second
	}

	result, err := l.script.Run(ctx, l.client, []string{"ratelimit:" + key},
		l.rate, l.burst, ttl.Milliseconds()).Int()
	if err != nil {
		return true, err
	}
	return result == 1, nil
}

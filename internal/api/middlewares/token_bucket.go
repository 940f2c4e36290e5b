package middlewares

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// KEYS[1] = bucket hash {tokens, ts}
// ARGV[1] = refill rate per second, ARGV[2] = capacity
// returns {allowed, floor(tokens), retry_after_ms}
var tokenBucketScript = redis.NewScript(`
local key  = KEYS[1]
local rate = tonumber(ARGV[1])
local cap  = tonumber(ARGV[2])

local t = redis.call('TIME')
local now_ms = (tonumber(t[1]) * 1000) + math.floor(tonumber(t[2]) / 1000)

local data = redis.call('HMGET', key, 'tokens', 'ts')
local tokens = tonumber(data[1])
local ts     = tonumber(data[2])
if tokens == nil then
  tokens = cap
  ts = now_ms
end

local elapsed = now_ms - ts
if elapsed > 0 then
  tokens = math.min(cap, tokens + (elapsed / 1000.0) * rate)
end

local allowed = 0
local retry_ms = 0
if tokens >= 1.0 then
  tokens = tokens - 1.0
  allowed = 1
else
  retry_ms = math.ceil((1.0 - tokens) * 1000.0 / rate)
end

redis.call('HSET', key, 'tokens', tostring(tokens), 'ts', now_ms)
redis.call('PEXPIRE', key, math.ceil((cap / rate) * 1000.0))

return {allowed, math.floor(tokens), retry_ms}
`)

// RedisTokenBucket allows bursts up to its capacity and refills at a steady
// rate. State lives in one Redis hash per key and is updated atomically.
type RedisTokenBucket struct {
	rdb   redis.Scripter
	keyFn KeyFunc
	rate  float64
	burst int
}

func NewRedisTokenBucket(rdb redis.Scripter, ratePerSecond float64, burst int, keyFn KeyFunc) *RedisTokenBucket {
	return &RedisTokenBucket{rdb: rdb, keyFn: keyFn, rate: ratePerSecond, burst: burst}
}

func (tb *RedisTokenBucket) Middleware(next http.Handler) http.Handler {
	return limit(tb, tb.keyFn, next)
}

func (tb *RedisTokenBucket) policy() string { return "token-bucket" }

func (tb *RedisTokenBucket) allow(ctx context.Context, key string) (Decision, error) {
	vals, err := tokenBucketScript.Run(ctx, tb.rdb, []string{key}, tb.rate, tb.burst).Int64Slice()
	if err != nil {
		return Decision{}, err
	}
	if len(vals) != 3 {
		return Decision{}, fmt.Errorf("token bucket: unexpected reply %v", vals)
	}
	return Decision{
		Allowed:    vals[0] == 1,
		Limit:      tb.burst,
		Remaining:  int(vals[1]),
		RetryAfter: time.Duration(vals[2]) * time.Millisecond,
	}, nil
}

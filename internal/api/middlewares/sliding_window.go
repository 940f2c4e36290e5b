package middlewares

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisSlidingWindow caps requests per key over a rolling window using a
// sorted set of request timestamps.
type RedisSlidingWindow struct {
	rdb    redis.Cmdable
	keyFn  KeyFunc
	limit  int
	window time.Duration
}

func NewRedisSlidingWindow(rdb redis.Cmdable, limit int, window time.Duration, keyFn KeyFunc) *RedisSlidingWindow {
	return &RedisSlidingWindow{rdb: rdb, keyFn: keyFn, limit: limit, window: window}
}

func (sw *RedisSlidingWindow) Middleware(next http.Handler) http.Handler {
	return limit(sw, sw.keyFn, next)
}

func (sw *RedisSlidingWindow) policy() string { return "sliding-window" }

func (sw *RedisSlidingWindow) allow(ctx context.Context, key string) (Decision, error) {
	now := time.Now().UnixMilli()
	windowMs := sw.window.Milliseconds()

	pipe := sw.rdb.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: uuid.NewString()})
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(now-windowMs, 10))
	countCmd := pipe.ZCard(ctx, key)
	pipe.PExpire(ctx, key, sw.window+time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, err
	}
	count := int(countCmd.Val())

	d := Decision{
		Allowed:   count <= sw.limit,
		Limit:     sw.limit,
		Remaining: sw.limit - count,
	}
	if d.Allowed {
		return d, nil
	}

	// retry once the oldest entry leaves the window
	d.RetryAfter = time.Second
	oldest, err := sw.rdb.ZRangeWithScores(ctx, key, 0, 0).Result()
	if err == nil && len(oldest) == 1 {
		ms := int64(oldest[0].Score) + windowMs - now
		d.RetryAfter = max(time.Second, time.Duration(ms)*time.Millisecond)
	}
	return d, nil
}

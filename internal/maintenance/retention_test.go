package maintenance

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollover(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	ctx := t.Context()
	require.NoError(t, rdb.HIncrBy(ctx, "pinguard:outcomes", "total", 3).Err())

	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	dst, err := Rollover(ctx, rdb, "pinguard:outcomes", day, 48*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "pinguard:outcomes:2026-03-14", dst)

	assert.False(t, mr.Exists("pinguard:outcomes"))
	assert.Equal(t, "3", mr.HGet(dst, "total"))
	assert.Equal(t, 48*time.Hour, mr.TTL(dst))

	mr.FastForward(49 * time.Hour)
	assert.False(t, mr.Exists(dst))
}

func TestRollover_NothingRecorded(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	dst, err := Rollover(t.Context(), rdb, "pinguard:outcomes", time.Now(), time.Hour)
	require.NoError(t, err)
	assert.Empty(t, dst)
}

func TestNextRun(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 3, 14, 10, 30, 0, 0, loc)

	assert.Equal(t, time.Date(2026, 3, 15, 3, 0, 0, 0, loc), nextRun(now, 3, 0))
	assert.Equal(t, time.Date(2026, 3, 14, 23, 59, 0, 0, loc), nextRun(now, 23, 59))
	assert.Equal(t, time.Date(2026, 3, 15, 10, 30, 0, 0, loc), nextRun(now, 10, 30))
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		h, m int
	}{
		{"03:15", 3, 15},
		{"00:00", 0, 0},
		{"25:00", 0, 0},
		{"bad", 0, 0},
		{"7:5", 7, 5},
	}
	for _, tt := range tests {
		h, m := parseClock(tt.in)
		assert.Equal(t, tt.h, h, tt.in)
		assert.Equal(t, tt.m, m, tt.in)
	}
}

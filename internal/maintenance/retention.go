package maintenance

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// StartOutcomesRollover runs a daily job at localTime ("HH:MM") in tzName that
// moves the live outcomes hash to a dated key expiring after keepDays.
// Call once at startup: maintenance.StartOutcomesRollover(ctx, rdb, key, 7, "00:00", "UTC")
func StartOutcomesRollover(ctx context.Context, rdb redis.Cmdable, key string, keepDays int, localTime string, tzName string) {
	if keepDays <= 0 {
		keepDays = 7
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		loc = time.UTC
	}
	h, m := parseClock(localTime)
	keep := time.Duration(keepDays) * 24 * time.Hour

	go func() {
		for {
			next := nextRun(time.Now().In(loc), h, m)
			timer := time.NewTimer(time.Until(next))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
				day := next.AddDate(0, 0, -1)
				dst, err := Rollover(ctx, rdb, key, day, keep)
				switch {
				case err != nil:
					log.Printf("[retention] outcomes rollover failed: %v", err)
				case dst == "":
					log.Printf("[retention] outcomes rollover: nothing recorded")
				default:
					log.Printf("[retention] outcomes rolled to %s (kept %d days)", dst, keepDays)
				}
			}
		}
	}()
}

// Rollover renames key to key:YYYY-MM-DD for day and sets its expiry.
// It returns "" without error when there is nothing to roll.
func Rollover(ctx context.Context, rdb redis.Cmdable, key string, day time.Time, keep time.Duration) (string, error) {
	n, err := rdb.Exists(ctx, key).Result()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	dst := key + ":" + day.Format("2006-01-02")

	pipe := rdb.TxPipeline()
	pipe.Rename(ctx, key, dst)
	pipe.Expire(ctx, dst, keep)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", err
	}
	return dst, nil
}

func parseClock(s string) (h, m int) {
	h, m = 0, 0
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return
	}
	if v, err := strconv.Atoi(parts[0]); err == nil && v >= 0 && v < 24 {
		h = v
	}
	if v, err := strconv.Atoi(parts[1]); err == nil && v >= 0 && v < 60 {
		m = v
	}
	return
}

// nextRun is the first h:m strictly after now, in now's location.
func nextRun(now time.Time, h, m int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), h, m, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

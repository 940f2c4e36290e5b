package middlewares

import (
	"context"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/5w1tchy/pinguard/internal/api/apperr"
	"github.com/5w1tchy/pinguard/internal/metrics"
)

// KeyFunc maps a request to its limiter bucket.
type KeyFunc func(r *http.Request) string

// PerIPKey buckets callers by client IP.
func PerIPKey(prefix string) KeyFunc {
	return func(r *http.Request) string {
		ip := clientIP(r)
		if ip == "" {
			ip = "unknown"
		}
		return prefix + ":" + ip
	}
}

func clientIP(r *http.Request) string {
	// first hop of X-Forwarded-For is the original client
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// Decision is the outcome of one limiter check.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

type limiter interface {
	policy() string
	allow(ctx context.Context, key string) (Decision, error)
}

// limit wraps next with a limiter. Redis errors fail open: a PIN check is
// never refused because the limiter store is down.
func limit(l limiter, keyFn KeyFunc, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := keyFn(r)
		d, err := l.allow(r.Context(), key)
		if err != nil {
			log.Printf("[RateLimit] %s: redis error: %v (allowing request)", l.policy(), err)
			next.ServeHTTP(w, r)
			return
		}

		h := w.Header()
		h.Set("X-RateLimit-Policy", l.policy())
		h.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, d.Remaining)))

		if !d.Allowed {
			sec := max(1, int64((d.RetryAfter+time.Second-1)/time.Second))
			h.Set("Retry-After", strconv.FormatInt(sec, 10))
			log.Printf("[RateLimit] %s: blocked %s, retry after %ds", l.policy(), key, sec)
			metrics.RateLimited(l.policy())

			apperr.Write(w, r, apperr.Problem{
				Status:    http.StatusTooManyRequests,
				Title:     "Too Many Requests",
				Detail:    "rate limit exceeded; retry after " + strconv.FormatInt(sec, 10) + "s",
				Retryable: true,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

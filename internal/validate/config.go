package validate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/5w1tchy/pinguard/internal/config"
	zxcvbn "github.com/ccojocar/zxcvbn-go"
	"github.com/redis/go-redis/v9"
)

// Config validates auth, rate-limit and batch settings.
// Fail-fast on bad config.
func Config(cfg config.Config) error {
	// JWT secret must be present & reasonably long when auth is on
	if cfg.AuthRequired && len(cfg.JWTSecret) < 32 {
		return errors.New("AUTH_JWT_SECRET must be at least 32 characters when AUTH_REQUIRED is set")
	}
	if cfg.AuthClockSkew < 0 {
		return fmt.Errorf("AUTH_CLOCK_SKEW: must be >= 0, got %s", cfg.AuthClockSkew)
	}

	if cfg.RateLimitPerSec <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_SEC: must be > 0, got %v", cfg.RateLimitPerSec)
	}
	if cfg.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST: must be >= 1, got %d", cfg.RateLimitBurst)
	}
	if cfg.RateLimitWindowMax < 1 || cfg.RateLimitWindow <= 0 {
		return errors.New("RATE_LIMIT_WINDOW_MAX and RATE_LIMIT_WINDOW must be positive")
	}

	if cfg.MaxBodySize < 1024 {
		return fmt.Errorf("MAX_BODY_SIZE: must be >= 1024, got %d", cfg.MaxBodySize)
	}
	if cfg.BatchMaxItems < 1 || cfg.BatchMaxItems > 1000 {
		return fmt.Errorf("BATCH_MAX_ITEMS: must be in [1,1000], got %d", cfg.BatchMaxItems)
	}
	if cfg.BatchWorkers < 1 {
		return fmt.Errorf("BATCH_WORKERS: must be >= 1, got %d", cfg.BatchWorkers)
	}
	if cfg.OutcomeBuffer < 1 || cfg.OutcomeWorkers < 1 {
		return errors.New("OUTCOME_BUFFER and OUTCOME_WORKERS must be >= 1")
	}
	if cfg.OutcomeKeepDays < 1 {
		return fmt.Errorf("OUTCOME_KEEP_DAYS: must be >= 1, got %d", cfg.OutcomeKeepDays)
	}
	if _, err := time.Parse("15:04", cfg.OutcomeRolloverAt); err != nil {
		return fmt.Errorf("OUTCOME_ROLLOVER_AT: want HH:MM, got %q", cfg.OutcomeRolloverAt)
	}
	if _, err := time.LoadLocation(cfg.OutcomeRolloverTZ); err != nil {
		return fmt.Errorf("OUTCOME_ROLLOVER_TZ: %w", err)
	}

	if (cfg.TLSCert == "") != (cfg.TLSKey == "") {
		return errors.New("PINGUARD_TLS_CERT and PINGUARD_TLS_KEY must be set together")
	}
	return nil
}

// HardeningWarnings returns non-fatal warnings you may want to log on startup.
func HardeningWarnings(cfg config.Config) []string {
	var warns []string

	if !cfg.RedisConfigured() {
		warns = append(warns, "no Redis configured; rate limiting and outcome stats are disabled")
	}
	if IsWeakSecret(cfg.JWTSecret) {
		warns = append(warns, "AUTH_JWT_SECRET is easy to guess; use a long random value")
	}
	if cfg.AuthClockSkew > 5*time.Minute {
		warns = append(warns, fmt.Sprintf("AUTH_CLOCK_SKEW=%s is > 5m; expired tokens stay usable for long", cfg.AuthClockSkew))
	}

	// Production-specific nudges
	if strings.EqualFold(cfg.AppEnv, "production") {
		if !cfg.AuthRequired {
			warns = append(warns, "AUTH_REQUIRED is off in production; any caller can score PINs")
		}
		if !cfg.UseTLS() {
			warns = append(warns, "PINGUARD_TLS_CERT/KEY not set; terminate TLS upstream, PINs travel in request bodies")
		}
		if strings.HasPrefix(cfg.RedisURL, "redis://") {
			warns = append(warns, "UPSTASH_REDIS_URL uses redis:// (no TLS). Prefer rediss:// for TLS")
		}
		if cfg.RedisURL == "" && cfg.RedisAddr != "" && (cfg.RedisUser == "" || cfg.RedisPassword == "") {
			warns = append(warns, "REDIS_ADDR provided without REDIS_USER/REDIS_PASSWORD; require auth in production")
		}
	}

	return warns
}

const weakSecretScore = 3

// IsWeakSecret reports whether a configured secret scores below 3 on zxcvbn.
// An empty secret is not weak; auth is simply off.
func IsWeakSecret(secret string) bool {
	if secret == "" {
		return false
	}
	return zxcvbn.PasswordStrength(secret, []string{"pinguard"}).Score < weakSecretScore
}

// PingRedis checks connectivity with a short timeout.
func PingRedis(rdb *redis.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	_, err := rdb.Ping(ctx).Result()
	return err
}

package validate

import (
	"strings"
	"testing"
	"time"

	"github.com/5w1tchy/pinguard/internal/config"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPIN(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr error
	}{
		{"1234", "1234", nil},
		{"0000", "0000", nil},
		{"１２３４", "1234", nil},
		{"12345", "12345", nil},
		{"", "", ErrPINRequired},
		{" 1234", "", ErrPINNotDigits},
		{"12a4", "", ErrPINNotDigits},
		{"12345678901234567", "", ErrPINTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := PIN(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDate(t *testing.T) {
	got, err := Date("1990-02-30")
	require.NoError(t, err)
	assert.Equal(t, "1990-02-30", got)

	got, err = Date("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = Date("1990-02-15T00:00:00.000000000+00:00")
	assert.ErrorIs(t, err, ErrDateTooLong)

	got, err = Date("１９９０－０２－１５")
	require.NoError(t, err)
	assert.Equal(t, "1990-02-15", got)
}

func TestRequireBounded(t *testing.T) {
	got, err := RequireBounded("subject", "  billing  ", 1, 64)
	require.NoError(t, err)
	assert.Equal(t, "billing", got)

	_, err = RequireBounded("subject", "   ", 1, 64)
	assert.EqualError(t, err, "subject must be between 1 and 64 characters")
}

func validConfig() config.Config {
	return config.Config{
		AppEnv:             "development",
		RateLimitPerSec:    5,
		RateLimitBurst:     20,
		RateLimitWindowMax: 3000,
		RateLimitWindow:    time.Hour,
		MaxBodySize:        65536,
		AuthClockSkew:      time.Minute,
		BatchMaxItems:      50,
		BatchWorkers:       4,
		OutcomeBuffer:      100,
		OutcomeWorkers:     1,
		OutcomeKeepDays:    7,
		OutcomeRolloverAt:  "00:00",
		OutcomeRolloverTZ:  "UTC",
	}
}

func TestConfig(t *testing.T) {
	require.NoError(t, Config(validConfig()))

	cfg := validConfig()
	cfg.AuthRequired = true
	cfg.JWTSecret = "short"
	assert.Error(t, Config(cfg))

	cfg.JWTSecret = "0123456789abcdef0123456789abcdef"
	assert.NoError(t, Config(cfg))

	cfg = validConfig()
	cfg.BatchMaxItems = 0
	assert.Error(t, Config(cfg))

	cfg = validConfig()
	cfg.TLSCert = "cert.pem"
	assert.Error(t, Config(cfg))

	cfg = validConfig()
	cfg.RateLimitPerSec = 0
	assert.Error(t, Config(cfg))

	cfg = validConfig()
	cfg.OutcomeRolloverAt = "3am"
	assert.Error(t, Config(cfg))

	cfg = validConfig()
	cfg.OutcomeRolloverTZ = "Nowhere/Special"
	assert.Error(t, Config(cfg))
}

func TestHardeningWarnings(t *testing.T) {
	cfg := validConfig()
	assert.Len(t, HardeningWarnings(cfg), 1) // no redis

	cfg.AppEnv = "production"
	cfg.RedisURL = "redis://example:6379"
	warns := HardeningWarnings(cfg)
	assert.Len(t, warns, 3)
	assert.Contains(t, warns[2], "rediss://")
}

func TestIsWeakSecret(t *testing.T) {
	assert.False(t, IsWeakSecret(""))
	assert.True(t, IsWeakSecret(strings.Repeat("a", 32)))
	assert.True(t, IsWeakSecret("pinguardpinguardpinguardpinguard"))
	assert.False(t, IsWeakSecret("Zq8#kL2!vN7@pR4$wT9%yU1^mB6&cX3*"))

	cfg := validConfig()
	cfg.JWTSecret = strings.Repeat("a", 32)
	assert.Contains(t, HardeningWarnings(cfg), "AUTH_JWT_SECRET is easy to guess; use a long random value")
}

func TestPingRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	assert.NoError(t, PingRedis(rdb, time.Second))

	mr.Close()
	assert.Error(t, PingRedis(rdb, 200*time.Millisecond))
}

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the runtime configuration of the API server and CLI.
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"development"`

	Addr    string `env:"PINGUARD_ADDR" envDefault:":3000"`
	TLSCert string `env:"PINGUARD_TLS_CERT"`
	TLSKey  string `env:"PINGUARD_TLS_KEY"`

	// Redis: either a full URL (Upstash style) or split fields.
	RedisURL      string `env:"UPSTASH_REDIS_URL"`
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisUser     string `env:"REDIS_USER"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisTLS      bool   `env:"REDIS_TLS"`

	RateLimitPerSec    float64       `env:"RATE_LIMIT_PER_SEC" envDefault:"5"`
	RateLimitBurst     int           `env:"RATE_LIMIT_BURST" envDefault:"20"`
	RateLimitWindowMax int           `env:"RATE_LIMIT_WINDOW_MAX" envDefault:"3000"`
	RateLimitWindow    time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"60m"`

	MaxBodySize    int64    `env:"MAX_BODY_SIZE" envDefault:"65536"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://127.0.0.1:5173"`
	StrictSecurity bool     `env:"STRICT_SECURITY"`

	AuthRequired  bool          `env:"AUTH_REQUIRED"`
	JWTSecret     string        `env:"AUTH_JWT_SECRET"`
	AuthClockSkew time.Duration `env:"AUTH_CLOCK_SKEW" envDefault:"60s"`

	BatchMaxItems int `env:"BATCH_MAX_ITEMS" envDefault:"50"`
	BatchWorkers  int `env:"BATCH_WORKERS" envDefault:"4"`

	OutcomeBuffer  int `env:"OUTCOME_BUFFER" envDefault:"10000"`
	OutcomeWorkers int `env:"OUTCOME_WORKERS" envDefault:"2"`

	// Daily rollover of the outcomes hash into dated keys.
	OutcomeKeepDays   int    `env:"OUTCOME_KEEP_DAYS" envDefault:"7"`
	OutcomeRolloverAt string `env:"OUTCOME_ROLLOVER_AT" envDefault:"00:00"`
	OutcomeRolloverTZ string `env:"OUTCOME_ROLLOVER_TZ" envDefault:"UTC"`
}

// Load reads optional dotenv files, then parses the environment.
// Missing dotenv files are not an error.
func Load(dotenvFiles ...string) (Config, error) {
	for _, f := range dotenvFiles {
		_ = godotenv.Load(f)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// RedisConfigured reports whether any Redis connection settings are present.
func (c Config) RedisConfigured() bool {
	return c.RedisURL != "" || c.RedisAddr != ""
}

// UseTLS reports whether the server should terminate TLS itself.
func (c Config) UseTLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

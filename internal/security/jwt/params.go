package jwtutil

import (
	"time"

	"github.com/5w1tchy/pinguard/internal/config"
)

type Config struct {
	Secret    []byte
	ClockSkew time.Duration
}

// ConfigFrom picks the token settings out of the app config.
func ConfigFrom(c config.Config) Config {
	return Config{
		Secret:    []byte(c.JWTSecret),
		ClockSkew: c.AuthClockSkew,
	}
}

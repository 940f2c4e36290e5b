package jwtutil

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoSecret = errors.New("jwt secret is not configured")

// SignService returns (tokenString, jti).
func SignService(cfg Config, subject string, scopes []string, ttl time.Duration) (string, string, error) {
	if len(cfg.Secret) == 0 {
		return "", "", ErrNoSecret
	}
	jti, err := randJTI()
	if err != nil {
		return "", "", err
	}
	claims := NewServiceClaims(subject, jti, scopes, ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(cfg.Secret)
	return s, jti, err
}

// ParseService verifies HS256 signature and leeway, returning claims.
func ParseService(cfg Config, tokenStr string) (*ServiceClaims, error) {
	if len(cfg.Secret) == 0 {
		return nil, ErrNoSecret
	}
	parser := jwt.NewParser(jwt.WithLeeway(cfg.ClockSkew), jwt.WithValidMethods([]string{"HS256"}))
	token, err := parser.ParseWithClaims(tokenStr, &ServiceClaims{}, func(t *jwt.Token) (interface{}, error) {
		return cfg.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*ServiceClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func randJTI() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}

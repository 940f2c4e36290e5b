package jwtutil

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Scopes understood by the API.
const (
	ScopeValidate = "pins:validate"
	ScopeStats    = "pins:stats"
)

// ServiceClaims identify a calling service and what it may do.
type ServiceClaims struct {
	Scopes []string `json:"scp"`
	jwt.RegisteredClaims
}

func NewServiceClaims(subject, jti string, scopes []string, ttl time.Duration) ServiceClaims {
	now := time.Now()
	return ServiceClaims{
		Scopes: scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// HasScope reports whether the claims grant scope.
func (c *ServiceClaims) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}

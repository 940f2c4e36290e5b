package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/5w1tchy/pinguard/internal/api/apperr"
	jwtutil "github.com/5w1tchy/pinguard/internal/security/jwt"
)

// RequireService verifies a Bearer service token carrying scope, then
// injects the token subject into the context. With enabled=false it only
// passes through.
func RequireService(cfg jwtutil.Config, enabled bool, scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			if raw == "" {
				unauthorized(w, r, "missing Authorization header")
				return
			}
			tokenStr, err := bearer(raw)
			if err != nil {
				unauthorized(w, r, "invalid Authorization header")
				return
			}
			claims, err := jwtutil.ParseService(cfg, tokenStr)
			if err != nil {
				unauthorized(w, r, "invalid token")
				return
			}
			if !claims.HasScope(scope) {
				apperr.WriteStatus(w, r, http.StatusForbidden, "Forbidden", "token lacks scope "+scope)
				return
			}

			ctx := WithService(r.Context(), claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request, detail string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="pinguard"`)
	apperr.WriteStatus(w, r, http.StatusUnauthorized, "Unauthorized", detail)
}

func bearer(h string) (string, error) {
	if !strings.HasPrefix(h, "Bearer ") && !strings.HasPrefix(h, "bearer ") {
		return "", errors.New("no bearer")
	}
	return strings.TrimSpace(h[len("Bearer "):]), nil
}

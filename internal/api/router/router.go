package router

import (
	"net/http"

	"github.com/5w1tchy/pinguard/internal/api/handlers/pins"
	mw "github.com/5w1tchy/pinguard/internal/api/middlewares"
	"github.com/5w1tchy/pinguard/internal/metrics"
	jwtutil "github.com/5w1tchy/pinguard/internal/security/jwt"
)

type Deps struct {
	Pins         *pins.Handler
	Auth         jwtutil.Config
	AuthRequired bool
}

func Router(d Deps) http.Handler {
	mux := http.NewServeMux()

	validateScope := mw.RequireService(d.Auth, d.AuthRequired, jwtutil.ScopeValidate)
	statsScope := mw.RequireService(d.Auth, d.AuthRequired, jwtutil.ScopeStats)

	mux.HandleFunc("GET /healthz", pins.Health)
	mux.Handle("GET /metrics", metrics.Handler())

	mux.Handle("POST /pins/validate", validateScope(http.HandlerFunc(d.Pins.Validate)))
	mux.Handle("POST /pins/validate/batch", validateScope(http.HandlerFunc(d.Pins.ValidateBatch)))

	mux.Handle("GET /stats", statsScope(http.HandlerFunc(d.Pins.Stats)))

	return mux
}

package pins

import (
	"log"
	"net/http"

	"github.com/5w1tchy/pinguard/internal/api/apperr"
	"github.com/5w1tchy/pinguard/internal/api/httpx"
	"github.com/5w1tchy/pinguard/internal/metrics/outcomes"
)

// GET /stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if h.RDB == nil {
		apperr.WriteStatus(w, r, http.StatusServiceUnavailable, "Unavailable", "stats store not configured")
		return
	}
	counts, err := outcomes.Read(r.Context(), h.RDB, h.StatsKey)
	if err != nil {
		log.Printf("[Stats] read failed: %v", err)
		apperr.WriteStatus(w, r, http.StatusBadGateway, "Stats error", "could not read counters")
		return
	}
	httpx.OK(w, r, counts)
}

// GET /healthz
func Health(w http.ResponseWriter, r *http.Request) {
	httpx.OKNoData(w, r)
}

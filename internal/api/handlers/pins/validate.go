package pins

import (
	"net/http"

	"github.com/5w1tchy/pinguard/internal/api/apperr"
	"github.com/5w1tchy/pinguard/internal/api/httpx"
	"github.com/5w1tchy/pinguard/internal/pin"
)

// POST /pins/validate
//
// Accepts JSON {"pin": "...", "demographics": {...}} or a urlencoded form
// with pin, dob, spouse_dob and anniversary.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req validateRequest
	if isForm(r) {
		if !decodeForm(w, r, &req) {
			return
		}
	} else if !decodeJSON(w, r, &req) {
		return
	}

	p, d, fields := checkInput("", req)
	if len(fields) > 0 {
		apperr.WriteFields(w, r, http.StatusUnprocessableEntity, "Invalid input", fields)
		return
	}

	res := pin.Validate(p, d)
	h.record(r, res)
	httpx.OK(w, r, res)
}

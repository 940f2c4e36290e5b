package pins

import (
	"fmt"
	"net/http"

	"github.com/5w1tchy/pinguard/internal/api/apperr"
	"github.com/5w1tchy/pinguard/internal/api/httpx"
	"github.com/5w1tchy/pinguard/internal/pin"
	"golang.org/x/sync/errgroup"
)

// POST /pins/validate/batch
//
// All items are checked before any is scored; one bad item fails the batch.
// Results keep input order.
func (h *Handler) ValidateBatch(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req batchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Items) == 0 {
		apperr.WriteStatus(w, r, http.StatusBadRequest, "Bad Request", "items must not be empty")
		return
	}
	if len(req.Items) > h.BatchMax {
		apperr.WriteStatus(w, r, http.StatusUnprocessableEntity, "Invalid input",
			fmt.Sprintf("at most %d items per batch", h.BatchMax))
		return
	}

	type input struct {
		pin  string
		demo pin.Demographics
	}
	inputs := make([]input, len(req.Items))
	var fields []apperr.FieldError
	for i, it := range req.Items {
		p, d, fe := checkInput(fmt.Sprintf("items[%d].", i), it)
		fields = append(fields, fe...)
		inputs[i] = input{pin: p, demo: d}
	}
	if len(fields) > 0 {
		apperr.WriteFields(w, r, http.StatusUnprocessableEntity, "Invalid input", fields)
		return
	}

	results := make([]pin.Result, len(inputs))
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(max(1, h.BatchWorkers))
	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = pin.Validate(in.pin, in.demo)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// client went away
		apperr.WriteStatus(w, r, http.StatusServiceUnavailable, "Canceled", "request canceled")
		return
	}

	for _, res := range results {
		h.record(r, res)
	}
	httpx.OK(w, r, batchResponse{Results: results})
}

package pins

import (
	"encoding/json"
	"errors"
	"log"
	"mime"
	"net/http"

	"github.com/5w1tchy/pinguard/internal/api/apperr"
	mw "github.com/5w1tchy/pinguard/internal/api/middlewares"
	"github.com/5w1tchy/pinguard/internal/metrics"
	"github.com/5w1tchy/pinguard/internal/pin"
	"github.com/5w1tchy/pinguard/internal/validate"
)

// decodeJSON reads a single JSON document, rejecting unknown fields.
// It writes the problem response itself and reports false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		bodyError(w, r, err, "invalid JSON")
		return false
	}
	return true
}

// decodeForm fills dst from a urlencoded body.
func decodeForm(w http.ResponseWriter, r *http.Request, dst *validateRequest) bool {
	if err := r.ParseForm(); err != nil {
		bodyError(w, r, err, "invalid form")
		return false
	}
	dst.PIN = r.PostForm.Get("pin")
	dst.Demographics = pin.Demographics{
		DOB:         r.PostForm.Get("dob"),
		SpouseDOB:   r.PostForm.Get("spouse_dob"),
		Anniversary: r.PostForm.Get("anniversary"),
	}
	return true
}

// bodyError maps a body read failure to 413 when BodySizeLimit tripped,
// 400 otherwise.
func bodyError(w http.ResponseWriter, r *http.Request, err error, detail string) {
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		apperr.WriteStatus(w, r, http.StatusRequestEntityTooLarge, "Payload Too Large", "request body too large")
		return
	}
	apperr.WriteStatus(w, r, http.StatusBadRequest, "Bad Request", detail)
}

func isForm(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/x-www-form-urlencoded"
}

// checkInput applies boundary validation. prefix namespaces field names for
// batch items ("items[2].").
func checkInput(prefix string, in validateRequest) (string, pin.Demographics, []apperr.FieldError) {
	var fields []apperr.FieldError

	p, err := validate.PIN(in.PIN)
	if err != nil {
		fields = append(fields, apperr.FieldError{Field: prefix + "pin", Code: pinErrCode(err), Message: err.Error()})
	}

	d := in.Demographics
	dates := []struct {
		name string
		val  *string
	}{
		{"demographics.dob", &d.DOB},
		{"demographics.spouseDob", &d.SpouseDOB},
		{"demographics.anniversary", &d.Anniversary},
	}
	for _, dt := range dates {
		v, err := validate.Date(*dt.val)
		if err != nil {
			fields = append(fields, apperr.FieldError{Field: prefix + dt.name, Code: "too_long", Message: err.Error()})
			continue
		}
		*dt.val = v
	}
	return p, d, fields
}

func pinErrCode(err error) string {
	switch {
	case errors.Is(err, validate.ErrPINRequired):
		return "required"
	case errors.Is(err, validate.ErrPINNotDigits):
		return "not_digits"
	case errors.Is(err, validate.ErrPINTooLong):
		return "too_long"
	default:
		return "invalid"
	}
}

// record feeds metrics and stats and logs the outcome. Never the PIN.
func (h *Handler) record(r *http.Request, res pin.Result) {
	metrics.Observe(res)
	h.Outcomes.Enqueue(res)

	svc, _ := mw.ServiceFrom(r.Context())
	log.Printf("[PinCheck] rid=%s svc=%s strength=%s score=%d reasons=%d patterns=%d",
		mw.GetRequestID(r), svc, res.Strength, res.SecurityScore,
		len(res.WeaknessReasons), len(res.DetectedPatterns))
}

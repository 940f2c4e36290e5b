package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope is the success body. Failures use apperr problem documents.
type Envelope struct {
	Status    string `json:"status"`
	Data      any    `json:"data,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes data in a success envelope tagged with the request ID, so a
// caller can quote it next to a verdict it wants to dispute.
func OK(w http.ResponseWriter, r *http.Request, data any) {
	WriteJSON(w, http.StatusOK, Envelope{Status: "success", Data: data, RequestID: requestID(r)})
}

func OKNoData(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, Envelope{Status: "success", RequestID: requestID(r)})
}

// set by the RequestID middleware
func requestID(r *http.Request) string {
	if r == nil {
		return ""
	}
	return r.Header.Get("X-Request-ID")
}

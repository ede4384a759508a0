package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/hobbyhub-app/hobby-directory-api/internal/app/accounts"
	"github.com/hobbyhub-app/hobby-directory-api/internal/app/activities"
)

type errorPayload struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code string, message string, details map[string]any) {
	body := errorResponse{Error: errorPayload{
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: middleware.GetReqID(r.Context()),
	}}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeAppError maps application-layer errors onto the error envelope;
// anything unrecognized becomes an opaque 500.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	var accErr *accounts.Error
	if errors.As(err, &accErr) {
		writeError(w, r, accErr.Status, accErr.Code, accErr.Message, accErr.Details)
		return
	}
	var actErr *activities.Error
	if errors.As(err, &actErr) {
		writeError(w, r, actErr.Status, actErr.Code, actErr.Message, actErr.Details)
		return
	}
	writeError(w, r, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

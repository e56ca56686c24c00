package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"shiftblocks/internal/display"
	"shiftblocks/internal/scheduling"
)

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Reason is the text shown to staff, in German.
	Reason string `json:"reason,omitempty"`
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	writeEnvelope(w, status, APIError{Code: code, Message: message})
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteDomainError maps scheduling errors onto status codes and the error envelope.
func WriteDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		LoggerFromContext(r.Context()).Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		msg = "internal error"
	}
	writeEnvelope(w, status, APIError{Code: code, Message: msg, Reason: display.RejectionReason(err)})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, scheduling.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_FAILED"
	case scheduling.IsNotFound(err):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, scheduling.ErrDuplicateBooking):
		return http.StatusConflict, "DUPLICATE_BOOKING"
	case errors.Is(err, scheduling.ErrBlockFull):
		return http.StatusConflict, "BLOCK_FULL"
	case errors.Is(err, scheduling.ErrBlockNotOpen):
		return http.StatusConflict, "BLOCK_NOT_OPEN"
	case errors.Is(err, scheduling.ErrInvalidTransition):
		return http.StatusConflict, "INVALID_STATE_TRANSITION"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

func writeEnvelope(w http.ResponseWriter, status int, e APIError) {
	WriteJSON(w, status, ErrorEnvelope{Error: e})
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/omkar-s8203/pune-home-circle/internal/apperr"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// respondError maps the error taxonomy onto HTTP codes. Unknown errors are
// internal; nothing is masked as success.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := "internal"

	switch {
	case errors.Is(err, apperr.ErrUnauthorized):
		status, code = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, apperr.ErrForbidden):
		status, code = http.StatusForbidden, "forbidden"
	case errors.Is(err, apperr.ErrInvalidArgument):
		status, code = http.StatusBadRequest, "invalid_argument"
	case errors.Is(err, apperr.ErrBlocked):
		status, code = http.StatusForbidden, "blocked"
	case errors.Is(err, apperr.ErrQuotaExceeded):
		status, code = http.StatusConflict, "quota_exceeded"
	case errors.Is(err, apperr.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, apperr.ErrInvalidState):
		status, code = http.StatusConflict, "invalid_state"
	case errors.Is(err, apperr.ErrStorageFailure):
		status, code = http.StatusBadGateway, "storage_failure"
	case errors.Is(err, apperr.ErrPersistence):
		status, code = http.StatusInternalServerError, "persistence_failure"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error(), Code: code})
}

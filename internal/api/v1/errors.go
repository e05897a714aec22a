package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lemanjenny/GoalSpark2.0/internal/auth"
	"github.com/lemanjenny/GoalSpark2.0/internal/service"
)

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string, fields map[string]string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message, Fields: fields}})
}

// writeServiceError maps service sentinels onto HTTP statuses. Anything
// unrecognized is a 500 with a generic message so internals never leak.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "resource not found", nil)
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "operation not allowed", nil)
	case errors.Is(err, service.ErrNotAssignee):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "only assigned users can report progress", nil)
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "email already registered", map[string]string{"email": "taken"})
	case errors.Is(err, service.ErrInvalidManager):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "manager not found or not a manager", map[string]string{"manager_id": "invalid"})
	case errors.Is(err, service.ErrAssigneeNotFound):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "assignee not found", map[string]string{"assigned_to": "invalid"})
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "incorrect email or password", nil)
	case errors.Is(err, service.ErrInvalidResetToken):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid or expired reset token", map[string]string{"token": "invalid"})
	case errors.Is(err, auth.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token", nil)
	default:
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
	}
}

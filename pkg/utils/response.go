package utils

import (
	"encoding/json"
	"net/http"

	"apartment-backend/internal/apperr"

	"go.uber.org/zap"
)

var exposeInternalErrors bool

// ExposeInternalErrors makes Error return the cause of 500 responses instead
// of a generic message. Enabled in development only.
func ExposeInternalErrors(expose bool) {
	exposeInternalErrors = expose
}

// JSON writes data as a JSON response with the given status
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("[HTTP] Failed to encode response", zap.Error(err))
	}
}

// Message writes {"message": msg}
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

// Error writes {"error": msg} with the status that matches err's kind.
// Unclassified errors are logged and reported as 500.
func Error(w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)
	msg := apperr.MessageOf(err)

	if status == http.StatusInternalServerError {
		zap.L().Error("[HTTP] Internal error", zap.Error(err))
		if exposeInternalErrors {
			msg = err.Error()
		} else {
			msg = "Internal server error"
		}
	}

	JSON(w, status, map[string]string{"error": msg})
}

// DecodeJSON reads the request body into dst
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return apperr.Validation("Request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation("Invalid request body")
	}
	return nil
}

// Package handlers provides JSON response helpers shared by HTTP handlers.
// Every body follows the envelope {status_code, message, data}.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Response is the JSON envelope for every API response body.
type Response struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}

// RespondJSON writes a success envelope with the given status, message, and data.
func RespondJSON(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

// RespondError logs the error and writes an error envelope. Client errors
// (4xx) carry the error text; server errors are reported with a generic
// message so internal detail never leaks to the caller.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	message := "internal server error"
	if status < http.StatusInternalServerError {
		message = err.Error()
	}

	logger.Error(
		"request failed",
		"status", status,
		"error", err,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{
		StatusCode: status,
		Message:    message,
	})
}

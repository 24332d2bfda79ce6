// Package handlers provides HTTP response utilities for JSON APIs.
// Every response is wrapped in a uniform envelope so clients can rely
// on a single shape for success and failure alike.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Response is the envelope wrapping every API response body.
type Response struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}

// Envelope messages for successful operations.
const (
	MessageRetrieved = "Retrieved successfully"
	MessageCreated   = "Created successfully"
	MessageUpdated   = "Updated successfully"
	MessageDeleted   = "Deleted successfully"
)

// RespondData writes a success envelope with the given status, message, and data.
func RespondData(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, Response{
		Success:    true,
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

// RespondMessage writes a success envelope without a data payload.
func RespondMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{
		Success:    true,
		StatusCode: status,
		Message:    message,
	})
}

// RespondError logs the error and writes a failure envelope. Internal
// errors are masked with a generic message so storage details never
// reach clients.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	logger.Error("handler error", "error", err, "status", status)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = "internal server error"
	}

	writeJSON(w, status, Response{
		Success:    false,
		StatusCode: status,
		Message:    message,
	})
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tavolo/tavolo/internal/middleware"
	"github.com/tavolo/tavolo/internal/service"
)

// internalErrorMessage is the only detail unexpected failures leak to
// clients; the real error goes to the logs.
const internalErrorMessage = "Internal server error"

// Hello is the root endpoint.
// GET /
func Hello(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"message": "Hello from Tavolo!",
		"version": "1.0.0",
	}
	writeJSON(w, http.StatusOK, response)
}

// NotFound handles 404 responses.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Resource not found")
}

// MethodNotAllowed handles 405 responses.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		_ = err
	}
}

// writeError writes the API's uniform error envelope {message: string}.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeInternalError logs the real error and hides it from the client.
func writeInternalError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	logger.Error("request failed",
		slog.String("error", err.Error()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("request_id", middleware.GetRequestID(r.Context())),
	)
	writeError(w, http.StatusInternalServerError, internalErrorMessage)
}

// validationErrors are service errors that map to 400 with their own text.
var validationErrors = []error{
	service.ErrInvalidEmail,
	service.ErrWeakPassword,
	service.ErrMissingRestaurantFields,
	service.ErrInvalidSlug,
	service.ErrSlugReserved,
	service.ErrMissingMenuFields,
	service.ErrMissingPromotionFields,
	service.ErrMissingLedgerFields,
	service.ErrInvalidLedgerDate,
}

// mapServiceError translates known service errors to HTTP responses.
// Returns false when the error is unexpected and belongs to the 500 path.
func mapServiceError(w http.ResponseWriter, err error) bool {
	for _, verr := range validationErrors {
		if errors.Is(err, verr) {
			writeError(w, http.StatusBadRequest, capitalize(verr.Error()))
			return true
		}
	}

	switch {
	case errors.Is(err, service.ErrEmailExists):
		writeError(w, http.StatusConflict, "Email already registered")
	case errors.Is(err, service.ErrSlugExists):
		writeError(w, http.StatusConflict, "Slug already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrMenuItemNotFound):
		writeError(w, http.StatusNotFound, "Menu item not found")
	case errors.Is(err, service.ErrPromotionNotFound):
		writeError(w, http.StatusNotFound, "Promotion not found")
	case errors.Is(err, service.ErrRestaurantNotFound):
		writeError(w, http.StatusNotFound, "Restaurant not found")
	default:
		return false
	}
	return true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}

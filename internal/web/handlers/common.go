package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/kozaktomas/photo-people/internal/people"
	"github.com/rs/zerolog"
)

// errInvalidRequestBody is a shared error message for invalid JSON request bodies.
const errInvalidRequestBody = "invalid request body"

// sanitizeForLog removes newlines and carriage returns to prevent log injection.
func sanitizeForLog(s string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(s)
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondEngineError maps engine errors to status codes.
// Unknown errors are logged and answered with a generic message.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, people.ErrPersonNotFound):
		respondError(w, http.StatusNotFound, "person not found")
	case errors.Is(err, people.ErrClusterNotFound):
		respondError(w, http.StatusNotFound, "cluster not found")
	case errors.Is(err, people.ErrFaceNotFound):
		respondError(w, http.StatusNotFound, "face not found")
	case errors.Is(err, people.ErrPersonHasNoFaces):
		respondError(w, http.StatusConflict, "person has no usable faces")
	case errors.Is(err, people.ErrClusterAssigned):
		respondError(w, http.StatusConflict, "cluster is already assigned to the person")
	default:
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("path", sanitizeForLog(r.URL.Path)).
			Msg("request failed")
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// HealthCheck handles the health check endpoint.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

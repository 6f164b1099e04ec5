// filepath: internal/api/handlers/responses.go
package handlers

import (
	"encoding/json"
	"net/http"

	"gallerysaver/internal/logging"
)

// ErrorResponse is the body of every non-2xx reply from the gallery API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by the liveness probe.
type HealthResponse struct {
	Status       string `json:"status"`
	StorageModel string `json:"storage_model"`
}

// WriteError writes an ErrorResponse with the given status. It is shared with
// the router so middleware failures look like handler failures.
func WriteError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	WriteError(w, code, message)
}

// respondWithJSON marshals payload before touching the response so a marshal
// failure can still become a clean 500.
func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logging.Log.WithError(err).Errorf("Failed to marshal %T response", payload)
		code = http.StatusInternalServerError
		body = []byte(`{"error":"Failed to marshal JSON response"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	if _, err := w.Write(append(body, '\n')); err != nil {
		logging.Log.Debugf("Failed to write response: %v", err)
	}
}

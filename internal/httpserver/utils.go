package httpserver

import (
	"net/http"

	"gallerysaver/internal/api/handlers"
)

// respondWithError is used by the router's own handlers (404, body limit).
func respondWithError(w http.ResponseWriter, code int, message string) {
	handlers.WriteError(w, code, message)
}

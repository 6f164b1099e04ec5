// internal/api/handlers/health_handler.go
package handlers

import (
	"net/http"
)

// HealthCheck is the public liveness probe. It reports the configured storage
// model so a misrouted deployment is visible without credentials.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, HealthResponse{
		Status:       "ok",
		StorageModel: h.Cfg.Storage.Model,
	})
}

// filepath: internal/api/handlers/info_handler.go
package handlers

import (
	"net/http"
)

// @Summary Get service information
// @Description Retrieves the service name, version, uptime and the storage model saves are written with. This is a public endpoint.
// @Tags Info
// @Produce  json
// @Success 200 {object} models.Info
// @Failure 503 {object} ErrorResponse "Info service not configured"
// @Router /info [get]
func (h *Handlers) GetInfo(w http.ResponseWriter, r *http.Request) {
	if h.Info == nil {
		respondWithError(w, http.StatusServiceUnavailable, "info service not configured")
		return
	}
	respondWithJSON(w, http.StatusOK, h.Info.GetInfo())
}

// filepath: internal/api/handlers/housekeeping_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"gallerysaver/internal/logging"
	"gallerysaver/internal/services"
)

// @Summary Trigger housekeeping
// @Description Purges pending registry entries whose expiry has passed. With dryrun=true nothing is deleted.
// @Tags Housekeeping
// @Produce  json
// @Param   dryrun  query  bool  false  "Report without deleting"
// @Success 200 {object} models.HousekeepingReport
// @Failure 400 {object} ErrorResponse "Invalid dryrun parameter"
// @Failure 409 {object} ErrorResponse "No registry for the active storage model"
// @Failure 500 {object} ErrorResponse "Housekeeping failed"
// @Security BearerAuth
// @Security BasicAuth
// @Router /housekeeping [post]
func (h *Handlers) TriggerHousekeeping(w http.ResponseWriter, r *http.Request) {
	dryRun := false
	if v := r.URL.Query().Get("dryrun"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid dryrun parameter")
			return
		}
		dryRun = parsed
	}

	report, err := h.Housekeeping.TriggerHousekeeping(r.Context(), dryRun)
	if err != nil {
		if errors.Is(err, services.ErrUnsupported) {
			respondWithError(w, http.StatusConflict, "Housekeeping is not available for the direct storage model.")
			return
		}
		logging.Log.Errorf("Housekeeping failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Housekeeping failed.")
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}

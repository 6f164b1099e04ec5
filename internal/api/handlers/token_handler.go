// filepath: internal/api/handlers/token_handler.go
package handlers

import (
	"net/http"
	"time"

	"gallerysaver/internal/logging"
	"gallerysaver/internal/services/auth"
)

// tokenResponse is the JSON body returned on successful token generation.
type tokenResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// @Summary Get a JWT
// @Description Authenticate with Basic Auth (or an existing token) to receive a fresh access token.
// @Tags Auth
// @Produce  json
// @Success 200 {object} tokenResponse
// @Failure 401 {object} ErrorResponse "Authentication failed"
// @Failure 500 {object} ErrorResponse "Token generation failed"
// @Failure 501 {object} ErrorResponse "Token signing disabled"
// @Security BasicAuth
// @Router /token [post]
func (h *Handlers) GetToken(w http.ResponseWriter, r *http.Request) {
	if h.Tokens == nil {
		respondWithError(w, http.StatusNotImplemented, "Token signing is not configured")
		return
	}

	actor := auth.ActorFromContext(r.Context())
	token, expires, err := h.Tokens.GenerateToken(actor, h.Cfg.TokenTTLDuration)
	if err != nil {
		logging.Log.Errorf("Token generation failed for %s: %v", actor, err)
		respondWithError(w, http.StatusInternalServerError, "Could not generate token")
		return
	}

	respondWithJSON(w, http.StatusOK, tokenResponse{AccessToken: token, ExpiresAt: expires})
}

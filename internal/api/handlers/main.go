// filepath: internal/api/handlers/main.go
package handlers

import (
	"gallerysaver/internal/config"
	"gallerysaver/internal/services"
	"gallerysaver/internal/services/auth"

	"github.com/go-playground/validator/v10"
)

// Handlers holds the services the API handlers depend on.
type Handlers struct {
	Info         services.InfoService
	Gallery      services.GalleryService
	Housekeeping services.HousekeepingService
	Tokens       auth.TokenService // nil when no signing secret is configured
	Cfg          *config.Config

	validator *validator.Validate
}

// NewHandlers creates a new instance of Handlers with its dependencies.
func NewHandlers(
	info services.InfoService,
	gallery services.GalleryService,
	housekeeping services.HousekeepingService,
	tokens auth.TokenService,
	cfg *config.Config,
) *Handlers {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Handlers{
		Info:         info,
		Gallery:      gallery,
		Housekeeping: housekeeping,
		Tokens:       tokens,
		Cfg:          cfg,
		validator:    validator.New(),
	}
}

// filepath: internal/services/interfaces.go
package services

import (
	"context"

	"gallerysaver/internal/models"
)

// Auditor defines the interface for recording security-relevant events.
type Auditor interface {
	// Log records an event.
	// ctx: context to trace request IDs (if available)
	// action: what happened (e.g., "gallery.save_image", "housekeeping.trigger")
	// actor: who did it (token subject or basic auth user)
	// resource: what was affected (e.g., "Pictures/Trips")
	// details: structured metadata about the event
	Log(ctx context.Context, action string, actor string, resource string, details map[string]interface{})
}

// InfoService defines the interface for the info service.
type InfoService interface {
	GetInfo() models.Info
}

// GalleryService defines the interface for the two save operations.
// Both always answer with a SaveResult; failures are reported inside it.
type GalleryService interface {
	SaveImage(ctx context.Context, actor string, args models.SaveImageArgs) models.SaveResult
	SaveFile(ctx context.Context, actor string, args models.SaveFileArgs) models.SaveResult
}

// HousekeepingService defines the interface for the housekeeping service.
type HousekeepingService interface {
	Start()
	Stop()
	TriggerHousekeeping(ctx context.Context, dryRun bool) (*models.HousekeepingReport, error)
}

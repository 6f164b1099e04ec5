// filepath: internal/housekeeping/interfaces.go
package housekeeping

import (
	"context"
	"time"

	"gallerysaver/internal/models"
)

// PendingStore defines the registry methods required by the housekeeping service.
// This decouples the housekeeping logic from the concrete registry implementation.
type PendingStore interface {
	PendingEntries(ctx context.Context) ([]models.MediaEntry, error)
	ExpiredPending(ctx context.Context, cutoff time.Time) ([]models.MediaEntry, error)
	Delete(ctx context.Context, locator string) (int64, error) // Also removes the entry's blob
}

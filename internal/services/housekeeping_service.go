// filepath: internal/services/housekeeping_service.go
package services

import (
	"context"
	"time"

	"gallerysaver/internal/housekeeping"
	"gallerysaver/internal/logging"
	"gallerysaver/internal/models"
)

var _ HousekeepingService = (*housekeepingService)(nil)

// housekeepingService manages the lifecycle of the background housekeeping worker
// and provides a method for manual triggering.
type housekeepingService struct {
	worker  *housekeeping.Service
	enabled bool
}

// NewHousekeepingService creates a new HousekeepingService. A nil store means the
// active storage model keeps no registry, so there is nothing to purge.
func NewHousekeepingService(store housekeeping.PendingStore, interval time.Duration, enabled bool) *housekeepingService {
	s := &housekeepingService{enabled: enabled}
	if store != nil {
		s.worker = housekeeping.NewService(housekeeping.Dependencies{Registry: store}, interval)
	}
	return s
}

// Start begins the background housekeeping worker.
func (s *housekeepingService) Start() {
	if s.worker == nil {
		logging.Log.Info("Housekeeping not started: the direct storage model keeps no registry.")
		return
	}
	if !s.enabled {
		logging.Log.Info("Background housekeeping is disabled by configuration.")
		return
	}
	s.worker.Start()
}

// Stop terminates the background housekeeping worker.
func (s *housekeepingService) Stop() {
	if s.worker != nil && s.enabled {
		s.worker.Stop()
	}
}

// TriggerHousekeeping manually purges the expired pending entries.
func (s *housekeepingService) TriggerHousekeeping(ctx context.Context, dryRun bool) (*models.HousekeepingReport, error) {
	if s.worker == nil {
		return nil, ErrUnsupported
	}
	return s.worker.RunNow(ctx, housekeeping.RunOptions{DryRun: dryRun})
}

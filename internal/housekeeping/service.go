// filepath: internal/housekeeping/service.go
package housekeeping

import (
	"context"
	"sync"
	"time"

	"gallerysaver/internal/logging"
	"gallerysaver/internal/models"
)

const (
	// DefaultCheckInterval is used when no interval is configured.
	DefaultCheckInterval = 1 * time.Hour
	// MinCheckInterval is the minimum time between checks to prevent busy-looping.
	MinCheckInterval = 1 * time.Minute
)

// Service provides the background worker for automated housekeeping.
type Service struct {
	Deps     Dependencies
	Interval time.Duration

	mu       sync.Mutex // serializes runs from the timer and from RunNow
	timer    *time.Timer
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewService creates a new housekeeping service instance.
func NewService(deps Dependencies, interval time.Duration) *Service {
	return &Service{
		Deps:     deps,
		Interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start kicks off the background housekeeping service.
func (s *Service) Start() {
	logging.Log.Info("Starting background housekeeping service.")
	s.timer = time.NewTimer(0) // Fire immediately on start

	go func() {
		for {
			select {
			case <-s.timer.C:
				s.runChecks()
				nextRun := s.scheduleNextRun()
				s.timer.Reset(nextRun)
				logging.Log.Infof("Next housekeeping check scheduled in %v.", nextRun)
			case <-s.stopCh:
				s.timer.Stop()
				return
			}
		}
	}()
}

// Stop terminates the background housekeeping service.
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		logging.Log.Info("Stopping background housekeeping service.")
		close(s.stopCh)
	})
}

// RunNow performs one purge outside the schedule.
func (s *Service) RunNow(ctx context.Context, opts RunOptions) (*models.HousekeepingReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Run(ctx, s.Deps, opts)
}

// scheduleNextRun calculates the duration until the next housekeeping event.
func (s *Service) scheduleNextRun() time.Duration {
	if s.Interval <= 0 {
		return DefaultCheckInterval
	}
	if s.Interval < MinCheckInterval {
		return MinCheckInterval
	}
	return s.Interval
}

// runChecks purges the pending entries whose expiry has passed.
func (s *Service) runChecks() {
	logging.Log.Debug("Housekeeping service: Checking pending entries...")
	report, err := s.RunNow(context.Background(), RunOptions{})
	if err != nil {
		logging.Log.Errorf("Housekeeping run failed: %v", err)
		return
	}
	logging.Log.Infof("Housekeeping run finished: %s", report.Message)
}

// filepath: internal/services/info_service.go
package services

import (
	"time"

	"gallerysaver/internal/gallery"
	"gallerysaver/internal/models"
)

var _ InfoService = (*infoService)(nil)

type infoService struct {
	Version      string
	StartTime    time.Time
	Capabilities gallery.Capabilities
	APILevel     int
}

// NewInfoService creates a new InfoService.
func NewInfoService(version string, startTime time.Time, caps gallery.Capabilities, apiLevel int) *infoService {
	return &infoService{
		Version:      version,
		StartTime:    startTime,
		Capabilities: caps,
		APILevel:     apiLevel,
	}
}

// GetInfo retrieves the application information.
func (s *infoService) GetInfo() models.Info {
	return models.Info{
		ServiceName:   "Gallery Saver API",
		Version:       s.Version,
		UptimeSince:   s.StartTime,
		StorageModel:  s.Capabilities.Model.String(),
		PendingDelete: s.Capabilities.PendingDelete,
		APILevel:      s.APILevel,
	}
}

// filepath: internal/services/mocks/gallery_mock.go
package mocks

import (
	"context"

	"gallerysaver/internal/models"
	"gallerysaver/internal/services"

	"github.com/stretchr/testify/mock"
)

// MockGalleryService is a mock implementation of services.GalleryService
type MockGalleryService struct {
	mock.Mock
}

var _ services.GalleryService = (*MockGalleryService)(nil)

func (m *MockGalleryService) SaveImage(ctx context.Context, actor string, args models.SaveImageArgs) models.SaveResult {
	called := m.Called(ctx, actor, args)
	return called.Get(0).(models.SaveResult)
}

func (m *MockGalleryService) SaveFile(ctx context.Context, actor string, args models.SaveFileArgs) models.SaveResult {
	called := m.Called(ctx, actor, args)
	return called.Get(0).(models.SaveResult)
}

// filepath: internal/services/gallery_service.go
package services

import (
	"context"

	"gallerysaver/internal/config"
	"gallerysaver/internal/gallery"
	"gallerysaver/internal/models"
)

var _ GalleryService = (*galleryService)(nil)

// galleryService adapts decoded call arguments to the gallery saver and
// records an audit event for every save.
type galleryService struct {
	saver   *gallery.Saver
	auditor Auditor
}

// NewGalleryService creates a new GalleryService.
func NewGalleryService(saver *gallery.Saver, auditor Auditor) *galleryService {
	return &galleryService{saver: saver, auditor: auditor}
}

// ResolveCapabilities derives the storage capabilities from the configured
// API level and applies the explicit overrides.
func ResolveCapabilities(cfg *config.Config) gallery.Capabilities {
	caps := gallery.CapabilitiesForAPILevel(cfg.Storage.APILevel)
	switch cfg.Storage.Model {
	case config.ModelDirect:
		caps = gallery.Capabilities{Model: gallery.DirectPath}
	case config.ModelRegistry:
		caps.Model = gallery.RegistryInsert
	}
	if cfg.Storage.PendingDelete != nil && caps.Model == gallery.RegistryInsert {
		caps.PendingDelete = *cfg.Storage.PendingDelete
	}
	return caps
}

// SaveImage stores an encoded image buffer.
func (s *galleryService) SaveImage(ctx context.Context, actor string, args models.SaveImageArgs) models.SaveResult {
	res := s.saver.SaveImage(ctx,
		args.ImageBytes,
		gallery.FromPtr(args.Quality),
		gallery.FromPtr(args.Name),
		gallery.FromPtr(args.Folder),
	)
	s.audit(ctx, "gallery.save_image", actor, args.Folder, res, map[string]interface{}{
		"bytes": len(args.ImageBytes),
	})
	return res
}

// SaveFile copies an existing file. isImage defaults to true.
func (s *galleryService) SaveFile(ctx context.Context, actor string, args models.SaveFileArgs) models.SaveResult {
	isImage := true
	if args.IsImage != nil {
		isImage = *args.IsImage
	}
	res := s.saver.SaveFile(ctx,
		gallery.FromPtr(args.File),
		gallery.FromPtr(args.Name),
		gallery.FromPtr(args.Folder),
		isImage,
	)
	details := map[string]interface{}{"is_image": isImage}
	if args.File != nil {
		details["source"] = *args.File
	}
	s.audit(ctx, "gallery.save_file", actor, args.Folder, res, details)
	return res
}

func (s *galleryService) audit(ctx context.Context, action, actor string, folder *string, res models.SaveResult, details map[string]interface{}) {
	if s.auditor == nil {
		return
	}
	resource := "gallery"
	if folder != nil && *folder != "" {
		resource = "gallery/" + *folder
	}
	details["success"] = res.IsSuccess
	if res.ErrorMessage != nil {
		details["error"] = *res.ErrorMessage
	}
	s.auditor.Log(ctx, action, actor, resource, details)
}

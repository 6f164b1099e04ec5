// filepath: internal/gallery/saver.go
package gallery

import (
	"context"

	"gallerysaver/internal/models"
)

// Saver is the entry point for both save operations. Every call returns a
// SaveResult; failures never escape as errors.
type Saver struct {
	resolver  *Resolver
	sequencer *Sequencer
}

// NewSaver wires a resolver and a sequencer built for the same capabilities.
func NewSaver(resolver *Resolver, sequencer *Sequencer) *Saver {
	return &Saver{resolver: resolver, sequencer: sequencer}
}

// Capabilities reports the storage capabilities the saver runs with.
func (s *Saver) Capabilities() Capabilities {
	if s == nil || s.resolver == nil {
		return Capabilities{}
	}
	return s.resolver.Capabilities()
}

// SaveImage stores an encoded image buffer in the Pictures collection.
func (s *Saver) SaveImage(ctx context.Context, image []byte, quality Optional[int], name, folder Optional[string]) models.SaveResult {
	return s.Save(ctx, NewImageRequest(image, quality, name, folder))
}

// SaveFile copies an existing file into the Pictures or Movies collection.
func (s *Saver) SaveFile(ctx context.Context, file Optional[string], name, folder Optional[string], isImage bool) models.SaveResult {
	return s.Save(ctx, NewFileRequest(file, name, folder, isImage))
}

// Save resolves req and writes it.
func (s *Saver) Save(ctx context.Context, req SaveRequest) models.SaveResult {
	if s == nil || s.resolver == nil || s.sequencer == nil || ctx == nil {
		return ResultFromError(newError(KindContextUnavailable, DirectPath, "save", nil))
	}
	d, err := s.resolver.Resolve(req)
	if err != nil {
		return ResultFromError(err)
	}
	return s.sequencer.Write(ctx, d, req)
}

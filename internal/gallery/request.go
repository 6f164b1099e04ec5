// filepath: internal/gallery/request.go
package gallery

import "strings"

// SaveRequest is one save call. It carries either an encoded image buffer or
// the path of an existing file, never both. Build it with NewImageRequest or
// NewFileRequest; it is not modified afterwards.
type SaveRequest struct {
	image   []byte
	source  Optional[string]
	isFile  bool
	quality Optional[int]
	name    Optional[string]
	folder  Optional[string]
	isImage bool
}

// NewImageRequest describes saving an encoded image buffer. quality (0..100)
// only applies to JPEG output on the direct path model.
func NewImageRequest(image []byte, quality Optional[int], name, folder Optional[string]) SaveRequest {
	return SaveRequest{
		image:   image,
		quality: quality,
		name:    name,
		folder:  folder,
		isImage: true,
	}
}

// NewFileRequest describes copying an existing file. isImage selects the
// Pictures collection (true) or Movies (false).
func NewFileRequest(source Optional[string], name, folder Optional[string], isImage bool) SaveRequest {
	return SaveRequest{
		source:  source,
		isFile:  true,
		name:    name,
		folder:  folder,
		isImage: isImage,
	}
}

// IsFile reports whether the payload is a source file path.
func (r SaveRequest) IsFile() bool { return r.isFile }

// Image returns the encoded image buffer of a byte save.
func (r SaveRequest) Image() []byte { return r.image }

// Source returns the source path of a file save.
func (r SaveRequest) Source() Optional[string] { return r.source }

// Quality returns the requested encode quality.
func (r SaveRequest) Quality() Optional[int] { return r.quality }

// Name returns the requested display name. Blank names count as absent.
func (r SaveRequest) Name() Optional[string] { return nonBlank(r.name) }

// Folder returns the requested sub folder. Blank folders count as absent.
func (r SaveRequest) Folder() Optional[string] { return nonBlank(r.folder) }

// IsImage reports whether the payload goes to the Pictures collection.
func (r SaveRequest) IsImage() bool { return r.isImage }

func nonBlank(o Optional[string]) Optional[string] {
	if v, ok := o.Get(); ok && strings.TrimSpace(v) != "" {
		return o
	}
	return None[string]()
}

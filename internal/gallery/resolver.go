// filepath: internal/gallery/resolver.go
package gallery

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"gallerysaver/internal/media"
	"gallerysaver/internal/storage"
)

// timestampLayout names saves that come without a name (YYYYMMDD-HHMMSS).
const timestampLayout = "20060102-150405"

// imageSuffixes are the suffixes kept when a file is declared as an image.
// Anything else is re-suffixed to png.
var imageSuffixes = map[string]bool{
	"png": true, "webp": true, "jpg": true, "jpeg": true, "heic": true, "gif": true,
	"apng": true, "raw": true, "svg": true, "bmp": true, "tif": true,
}

// Resolver turns a SaveRequest into a Descriptor for the configured storage model.
type Resolver struct {
	caps      Capabilities
	mediaRoot string
	mimes     media.MimeTable
	now       func() time.Time
}

// NewResolver creates a resolver. A nil mimes uses media.DefaultTable and a nil
// now uses the wall clock.
func NewResolver(caps Capabilities, mediaRoot string, mimes media.MimeTable, now func() time.Time) *Resolver {
	if mimes == nil {
		mimes = media.DefaultTable
	}
	if now == nil {
		now = time.Now
	}
	return &Resolver{caps: caps, mediaRoot: mediaRoot, mimes: mimes, now: now}
}

// Capabilities returns the capabilities the resolver was built with.
func (r *Resolver) Capabilities() Capabilities {
	return r.caps
}

// Resolve computes the display name, extension, MIME type and relative path
// of req. Under DirectPath it also creates the destination directory.
func (r *Resolver) Resolve(req SaveRequest) (Descriptor, error) {
	model := r.caps.Model
	fail := func(kind Kind, err error) (Descriptor, error) {
		return Descriptor{}, newError(kind, model, "resolve", err)
	}

	if req.IsFile() {
		if src, ok := req.Source().Get(); !ok || strings.TrimSpace(src) == "" {
			return fail(KindInvalidRequest, nil)
		}
	} else if len(req.Image()) == 0 {
		return fail(KindInvalidRequest, nil)
	}

	kind := Image
	if req.IsFile() && !req.IsImage() {
		kind = Video
	}
	ext := r.extension(req)

	resolvedAt := r.now()
	displayName, err := displayName(req.Name(), ext, resolvedAt)
	if err != nil {
		return fail(KindInvalidRequest, err)
	}

	relativePath := kind.Directory()
	if folder, ok := req.Folder().Get(); ok {
		sub, err := cleanFolder(folder)
		if err != nil {
			return fail(KindInvalidRequest, err)
		}
		relativePath = path.Join(relativePath, sub)
	}

	d := Descriptor{
		DisplayName:  displayName,
		Extension:    ext,
		RelativePath: relativePath,
		Kind:         kind,
		Model:        model,
		ResolvedAt:   resolvedAt,
	}

	switch model {
	case RegistryInsert:
		d.MimeType = Some(kind.String() + "/" + strings.ToLower(ext))
	default:
		if mime, ok := r.mimes.Lookup(ext); ok {
			d.MimeType = Some(mime)
		}
		dir, err := storage.CollectionPath(r.mediaRoot, relativePath)
		if err != nil {
			return fail(KindCollectionUnavailable, err)
		}
		d.Path = filepath.Join(dir, displayName)
	}
	return d, nil
}

// extension picks the target suffix. Byte saves use the fixed encode target of
// the model: JPEG for DirectPath, PNG for RegistryInsert.
func (r *Resolver) extension(req SaveRequest) string {
	if !req.IsFile() {
		if r.caps.Model == DirectPath {
			return "jpg"
		}
		return "png"
	}

	src, _ := req.Source().Get()
	base := path.Base(filepath.ToSlash(src))
	ext := ""
	if i := strings.LastIndex(base, "."); i >= 0 {
		ext = base[i+1:]
	}
	if ext == "" {
		return "png"
	}
	if req.IsImage() && !imageSuffixes[strings.ToLower(ext)] {
		return "png"
	}
	return ext
}

func displayName(name Optional[string], ext string, at time.Time) (string, error) {
	n, ok := name.Get()
	if !ok {
		return at.Format(timestampLayout) + "." + ext, nil
	}
	if strings.ContainsAny(n, `/\`) || n == "." || n == ".." {
		return "", fmt.Errorf("invalid name %q", n)
	}
	if filepath.Ext(n) == "" {
		return n + "." + ext, nil
	}
	return n, nil
}

// cleanFolder normalizes a caller supplied sub folder and rejects anything that
// would leave the collection directory.
func cleanFolder(folder string) (string, error) {
	f := strings.Trim(filepath.ToSlash(folder), "/")
	for _, seg := range strings.Split(f, "/") {
		if seg == ".." {
			return "", fmt.Errorf("invalid folder %q", folder)
		}
	}
	cleaned := path.Clean(f)
	if cleaned == "." || cleaned == "" {
		return "", fmt.Errorf("invalid folder %q", folder)
	}
	return cleaned, nil
}

// filepath: internal/media/mime.go
package media

import "strings"

// MimeTable maps a file extension (without dot) to a MIME type.
type MimeTable interface {
	Lookup(ext string) (string, bool)
}

// ExtensionTable is a fixed extension table covering the image and video
// formats a gallery accepts.
type ExtensionTable map[string]string

// DefaultTable is used when no table is injected.
var DefaultTable = ExtensionTable{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"apng": "image/apng",
	"gif":  "image/gif",
	"webp": "image/webp",
	"bmp":  "image/x-ms-bmp",
	"heic": "image/heic",
	"heif": "image/heif",
	"svg":  "image/svg+xml",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
	"mp4":  "video/mp4",
	"m4v":  "video/x-m4v",
	"3gp":  "video/3gpp",
	"mkv":  "video/x-matroska",
	"webm": "video/webm",
	"mov":  "video/quicktime",
	"avi":  "video/avi",
	"ts":   "video/mp2ts",
}

// Lookup implements MimeTable. Extensions are matched case-insensitively.
func (t ExtensionTable) Lookup(ext string) (string, bool) {
	mime, ok := t[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return mime, ok
}

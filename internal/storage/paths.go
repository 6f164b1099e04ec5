// filepath: internal/storage/paths.go
package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrPathTraversal is returned when a relative path escapes its root.
var ErrPathTraversal = errors.New("invalid path: potential path traversal")

// resolve joins rel onto root and makes sure the result stays below root.
func resolve(root, rel string) (string, error) {
	cleanedRoot := filepath.Clean(root)
	cleaned := filepath.Clean(filepath.Join(cleanedRoot, filepath.FromSlash(rel)))

	// --- SECURITY: Prevent Path Traversal ---
	if cleaned == cleanedRoot || !strings.HasPrefix(cleaned, cleanedRoot+string(filepath.Separator)) {
		return "", ErrPathTraversal
	}
	return cleaned, nil
}

// CollectionPath returns the absolute directory for a collection-relative path
// such as "Pictures/Holidays" without touching the filesystem.
func CollectionPath(mediaRoot, relativePath string) (string, error) {
	return resolve(mediaRoot, relativePath)
}

// PendingName is the blob name used while an entry is still pending.
// The expiry is encoded so stray blobs can be swept without the registry.
func PendingName(displayName string, expiresUnix int64) string {
	return fmt.Sprintf(".pending-%d-%s", expiresUnix, displayName)
}

// Key joins a relative path and a file name into a slash separated blob key.
func Key(relativePath, name string) string {
	return strings.TrimPrefix(filepath.ToSlash(filepath.Join(relativePath, name)), "/")
}

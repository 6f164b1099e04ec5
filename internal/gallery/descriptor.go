// filepath: internal/gallery/descriptor.go
package gallery

import (
	"time"

	"gallerysaver/internal/models"
)

// StorageModel selects how a destination is addressed.
type StorageModel int

const (
	// DirectPath writes to a literal file path below the media root.
	DirectPath StorageModel = iota
	// RegistryInsert reserves a pending registry entry, writes through it and finalizes it.
	RegistryInsert
)

func (m StorageModel) String() string {
	switch m {
	case DirectPath:
		return "direct"
	case RegistryInsert:
		return "registry"
	default:
		return "unknown"
	}
}

// MediaKind is the collection a payload belongs to.
type MediaKind int

const (
	Image MediaKind = iota
	Video
)

func (k MediaKind) String() string {
	if k == Video {
		return "video"
	}
	return "image"
}

// Collection is the registry collection for the kind.
func (k MediaKind) Collection() string {
	if k == Video {
		return models.CollectionVideo
	}
	return models.CollectionImages
}

// Directory is the well-known base directory for the kind.
func (k MediaKind) Directory() string {
	if k == Video {
		return "Movies"
	}
	return "Pictures"
}

// Capabilities describe what the storage platform supports. They are
// resolved once per process.
type Capabilities struct {
	Model StorageModel
	// PendingDelete reports whether a reserved entry can be deleted on rollback.
	PendingDelete bool
}

// Registry platform levels.
const (
	// LevelPendingEntries is the first level with pending registry entries.
	LevelPendingEntries = 29
	// LevelPendingDelete is the first level that deletes pending entries on request.
	LevelPendingDelete = 30
)

// CapabilitiesForAPILevel derives the capabilities of a platform level.
func CapabilitiesForAPILevel(level int) Capabilities {
	if level < LevelPendingEntries {
		return Capabilities{Model: DirectPath}
	}
	return Capabilities{
		Model:         RegistryInsert,
		PendingDelete: level >= LevelPendingDelete,
	}
}

// Descriptor is the resolved destination of one request.
type Descriptor struct {
	DisplayName  string
	Extension    string
	MimeType     Optional[string]
	RelativePath string
	Kind         MediaKind
	Model        StorageModel
	// Path is the absolute destination file; set for DirectPath only.
	Path       string
	ResolvedAt time.Time
}

// filepath: internal/registry/locator.go
package registry

import (
	"fmt"
	"strings"

	"gallerysaver/internal/models"

	"github.com/oklog/ulid/v2"
)

const locatorPrefix = "content://media/external/"

// Locator builds the opaque handle returned for an entry.
func Locator(collection, id string) string {
	return fmt.Sprintf("%s%s/media/%s", locatorPrefix, collection, id)
}

// ParseLocator splits a locator into collection and entry id.
func ParseLocator(locator string) (collection, id string, err error) {
	rest, ok := strings.CutPrefix(locator, locatorPrefix)
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidLocator, locator)
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 3 || parts[1] != "media" {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidLocator, locator)
	}
	collection, id = parts[0], parts[2]
	if collection != models.CollectionImages && collection != models.CollectionVideo {
		return "", "", fmt.Errorf("%w: unknown collection %q", ErrInvalidLocator, collection)
	}
	if _, err := ulid.ParseStrict(id); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidLocator, err)
	}
	return collection, id, nil
}

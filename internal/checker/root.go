package checker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultMarker is the file, relative to the repository root, whose
// presence identifies the root.
const DefaultMarker = "scripts/check_imports.go"

// ErrRootNotFound is returned when the upward search reaches the filesystem
// root without finding the marker file.
var ErrRootNotFound = errors.New("repository root not found")

// FindRoot searches start and its parents for a directory containing marker.
func FindRoot(start, marker string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", start, err)
	}

	for {
		_, statErr := os.Stat(filepath.Join(dir, filepath.FromSlash(marker)))
		if statErr == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: no %s above %s", ErrRootNotFound, marker, start)
		}

		dir = parent
	}
}

// Package media lists the media files available to publication types.
// Each type owns a subdirectory of the media root; media-typed field
// validation is a membership check against this listing.
package media

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/artpar/pubforge/ports"
)

// supportedExtensions are the media file types offered to media fields.
var supportedExtensions = []string{
	".png", ".svg", ".jpg", ".jpeg", ".gif", ".avif", ".webp", ".mp4", ".mp3", ".ogg",
}

// Inventory is a filesystem-backed MediaInventory rooted at a media
// directory with one subdirectory per publication type.
type Inventory struct {
	root string
}

// New creates an inventory rooted at the given directory.
func New(root string) *Inventory {
	return &Inventory{root: root}
}

// ListForType returns the sorted media filenames for a type's directory.
// A missing directory yields an empty list, matching the vocabulary
// store's treatment of absent groups.
func (i *Inventory) ListForType(typeDirectory string) ([]string, error) {
	dir := filepath.Join(i.root, typeDirectory)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read media dir %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if isMediaFile(entry.Name()) {
			files = append(files, entry.Name())
		}
	}

	sort.Strings(files)
	return files, nil
}

// isMediaFile reports whether a filename carries a supported extension.
func isMediaFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, supported := range supportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// Ensure interface compliance.
var _ ports.MediaInventory = (*Inventory)(nil)

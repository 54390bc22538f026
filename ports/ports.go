// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"time"

	"github.com/artpar/pubforge/domain/document"
	"github.com/artpar/pubforge/domain/tags"
)

// -----------------------------------------------------------------------------
// Infrastructure Ports
// -----------------------------------------------------------------------------

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// Random abstracts the randomness used by the seeder. Implementations are
// not required to be cryptographically strong; the Fake adapter makes
// generation deterministic for tests.
type Random interface {
	// Intn returns a uniform int in [0, n).
	Intn(n int) int
	// Float64 returns a uniform float in [0, 1).
	Float64() float64
}

// -----------------------------------------------------------------------------
// External State Ports
// -----------------------------------------------------------------------------

// VocabularyStore persists the tag vocabulary as a whole document.
// Load and Save operate on the entire vocabulary; there are no partial
// updates, and concurrent writers must serialize around Save.
type VocabularyStore interface {
	// Load reads the vocabulary. A missing backing store yields an
	// empty vocabulary, not an error.
	Load() (*tags.Vocabulary, error)

	// Save serializes the whole vocabulary, overwriting the store.
	Save(v *tags.Vocabulary) error

	// Validate checks the backing store's shape without loading it
	// into the domain type. A missing store is an error here.
	Validate() error
}

// MediaInventory lists the media files available to a publication type.
type MediaInventory interface {
	// ListForType returns the ordered filenames in the type's media
	// directory. A missing directory yields an empty list.
	ListForType(typeDirectory string) ([]string, error)
}

// DocumentStore persists publications as front matter + body files.
type DocumentStore interface {
	// Save writes a document at the path derived from its identifier.
	Save(doc *document.Document) error

	// Load reads a document by identifier.
	Load(identifier string) (*document.Document, error)

	// ListForType returns the identifiers of all documents in a
	// type's directory.
	ListForType(typeDirectory string) ([]string, error)
}

// Package docstore persists publication documents as markdown files
// with YAML front matter under the content root. The identifier maps
// directly to the file path: "posts/hello-world" lives at
// <root>/posts/hello-world.md.
package docstore

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/artpar/pubforge/domain/document"
	"github.com/artpar/pubforge/ports"
)

const (
	// Extension is appended to document identifiers to form file names.
	Extension = ".md"

	frontMatterFence = "---"
)

// Store is a filesystem-backed DocumentStore.
type Store struct {
	root string
}

// New creates a store rooted at the given content directory.
func New(root string) *Store {
	return &Store{root: root}
}

// Path returns the file path a document identifier maps to.
func (s *Store) Path(identifier string) string {
	return filepath.Join(s.root, filepath.FromSlash(identifier)+Extension)
}

// Save writes the document, creating parent directories as needed.
// An existing file at the same identifier is overwritten.
func (s *Store) Save(doc *document.Document) error {
	path := s.Path(doc.Identifier)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create content dir: %w", err)
	}

	data, err := Encode(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write document %s: %w", doc.Identifier, err)
	}
	return nil
}

// Load reads the document stored under the identifier.
func (s *Store) Load(identifier string) (*document.Document, error) {
	data, err := os.ReadFile(s.Path(identifier))
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", identifier, err)
	}
	matter, body, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode document %s: %w", identifier, err)
	}
	return &document.Document{Identifier: identifier, Matter: matter, Body: body}, nil
}

// ListForType returns the sorted identifiers of every document in a
// type's directory. A missing directory yields an empty list.
func (s *Store) ListForType(typeDirectory string) ([]string, error) {
	dir := filepath.Join(s.root, filepath.FromSlash(typeDirectory))

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read content dir %s: %w", dir, err)
	}

	var identifiers []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, Extension) {
			continue
		}
		identifiers = append(identifiers, typeDirectory+"/"+strings.TrimSuffix(name, Extension))
	}

	sort.Strings(identifiers)
	return identifiers, nil
}

// Encode renders a document as front matter followed by the body.
func Encode(doc *document.Document) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(frontMatterFence + "\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc.Matter); err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}
	buf.WriteString(frontMatterFence + "\n")
	buf.WriteString(doc.Body)

	return buf.Bytes(), nil
}

// Decode splits front matter from body and parses the header. Content
// without a leading fence is treated as all body with empty matter.
func Decode(data []byte) (*document.Matter, string, error) {
	text := string(data)

	if !strings.HasPrefix(text, frontMatterFence+"\n") {
		return document.NewMatter(), text, nil
	}
	rest := text[len(frontMatterFence)+1:]
	end := strings.Index(rest, "\n"+frontMatterFence+"\n")
	var header, body string
	if end < 0 {
		// Fence never closes; treat the remainder as the header.
		header, body = rest, ""
	} else {
		header = rest[:end+1]
		body = rest[end+len(frontMatterFence)+2:]
	}

	matter := document.NewMatter()
	if err := yaml.Unmarshal([]byte(header), matter); err != nil {
		return nil, "", fmt.Errorf("parse front matter: %w", err)
	}
	return matter, body, nil
}

// Ensure interface compliance.
var _ ports.DocumentStore = (*Store)(nil)

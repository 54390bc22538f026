// Package document models a publication: an identifier, ordered front
// matter, and a markdown body. Documents are owned by exactly one
// publication type, which defines their fields and directory.
package document

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Matter is the ordered front matter of a document. Field order follows
// the owning schema's declaration order, so it is preserved through
// marshalling rather than flattened into an unordered map.
type Matter struct {
	keys   []string
	values map[string]any
}

// NewMatter creates empty front matter.
func NewMatter() *Matter {
	return &Matter{values: make(map[string]any)}
}

// Set adds or replaces a field value, preserving first-set order.
func (m *Matter) Set(key string, value any) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns a field value.
func (m *Matter) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns field names in order.
func (m *Matter) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of fields.
func (m *Matter) Len() int {
	return len(m.keys)
}

// MarshalYAML emits the matter as a mapping in field order.
func (m *Matter) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range m.keys {
		var keyNode, valNode yaml.Node
		keyNode.SetString(key)
		if err := valNode.Encode(m.values[key]); err != nil {
			return nil, fmt.Errorf("encode field %q: %w", key, err)
		}
		node.Content = append(node.Content, &keyNode, &valNode)
	}
	return node, nil
}

// UnmarshalYAML reads a mapping, preserving key order.
func (m *Matter) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("front matter must be a mapping, got %v", node.Kind)
	}
	m.keys = nil
	m.values = make(map[string]any, len(node.Content)/2)
	for i := 0; i < len(node.Content)-1; i += 2 {
		var key string
		if err := node.Content[i].Decode(&key); err != nil {
			return fmt.Errorf("decode front matter key: %w", err)
		}
		var val any
		if err := node.Content[i+1].Decode(&val); err != nil {
			return fmt.Errorf("decode front matter value %q: %w", key, err)
		}
		m.Set(key, val)
	}
	return nil
}

// Document is one publication: identifier, front matter, and body text.
type Document struct {
	// Identifier locates the document inside its type's directory.
	// Derived by the seeder, or assigned by the authoring flow.
	Identifier string

	// Matter holds the field values in schema order.
	Matter *Matter

	// Body is the markdown body below the front matter.
	Body string
}

// New creates a document with the identifier normalized into the given
// type directory.
func New(directory, identifier string, matter *Matter, body string) *Document {
	if matter == nil {
		matter = NewMatter()
	}
	return &Document{
		Identifier: NormalizeIdentifier(directory, identifier),
		Matter:     matter,
		Body:       body,
	}
}

// NormalizeIdentifier prefixes an identifier with its type directory
// unless already present. Normalization is idempotent.
func NormalizeIdentifier(directory, identifier string) string {
	if directory == "" {
		return identifier
	}
	if identifier == directory || strings.HasPrefix(identifier, directory+"/") {
		return identifier
	}
	return directory + "/" + identifier
}

// Basename returns the identifier without its directory prefix.
func (d *Document) Basename() string {
	if i := strings.LastIndexByte(d.Identifier, '/'); i >= 0 {
		return d.Identifier[i+1:]
	}
	return d.Identifier
}

// TypeDirectory returns the directory portion of the identifier, or ""
// for unprefixed identifiers.
func (d *Document) TypeDirectory() string {
	if i := strings.IndexByte(d.Identifier, '/'); i >= 0 {
		return d.Identifier[:i]
	}
	return ""
}

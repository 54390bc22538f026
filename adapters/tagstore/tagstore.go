// Package tagstore persists the tag vocabulary to a YAML file.
// The file maps group names to string sequences and is always read and
// written as a whole document.
package tagstore

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/artpar/pubforge/domain/tags"
	"github.com/artpar/pubforge/ports"
)

// DefaultFileName is the conventional vocabulary file name.
const DefaultFileName = "tags.yml"

// MalformedVocabularyError reports a backing file that exists but is not
// a mapping of group name to sequence of strings.
type MalformedVocabularyError struct {
	Path   string
	Reason string
}

func (e *MalformedVocabularyError) Error() string {
	return fmt.Sprintf("malformed tag vocabulary %s: %s", e.Path, e.Reason)
}

// Store is a file-backed VocabularyStore.
type Store struct {
	path string
}

// New creates a store backed by the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the whole vocabulary. A missing file yields an empty
// vocabulary; a present but malformed file is an error.
func (s *Store) Load() (*tags.Vocabulary, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return tags.New(), nil
		}
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}

	return s.decode(data)
}

// decode parses the file, preserving the group order of the document.
func (s *Store) decode(data []byte) (*tags.Vocabulary, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &MalformedVocabularyError{Path: s.path, Reason: err.Error()}
	}

	v := tags.New()
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return v, nil // Empty file
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &MalformedVocabularyError{Path: s.path, Reason: "document is not a mapping of group name to values"}
	}

	for i := 0; i < len(root.Content)-1; i += 2 {
		keyNode, valNode := root.Content[i], root.Content[i+1]

		var name string
		if err := keyNode.Decode(&name); err != nil || keyNode.Tag != "!!str" {
			return nil, &MalformedVocabularyError{Path: s.path, Reason: fmt.Sprintf("group name on line %d is not a string", keyNode.Line)}
		}

		if valNode.Kind != yaml.SequenceNode {
			return nil, &MalformedVocabularyError{Path: s.path, Reason: fmt.Sprintf("group %q is not a sequence of strings", name)}
		}

		members := make([]string, 0, len(valNode.Content))
		for _, m := range valNode.Content {
			if m.Tag != "!!str" {
				return nil, &MalformedVocabularyError{Path: s.path, Reason: fmt.Sprintf("group %q has a non-string member on line %d", name, m.Line)}
			}
			var member string
			if err := m.Decode(&member); err != nil {
				return nil, &MalformedVocabularyError{Path: s.path, Reason: err.Error()}
			}
			members = append(members, member)
		}

		v.AddGroup(name, members)
	}

	return v, nil
}

// Save serializes the whole vocabulary, overwriting the backing file.
// Groups are written in vocabulary order.
func (s *Store) Save(v *tags.Vocabulary) error {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range v.GroupNames() {
		var keyNode, valNode yaml.Node
		keyNode.SetString(name)
		if err := valNode.Encode(v.ValuesFor(name)); err != nil {
			return fmt.Errorf("encode group %q: %w", name, err)
		}
		node.Content = append(node.Content, &keyNode, &valNode)
	}

	data, err := yaml.Marshal(node)
	if err != nil {
		return fmt.Errorf("marshal vocabulary: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create vocabulary directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write vocabulary: %w", err)
	}
	return nil
}

// Validate checks that the backing file exists and has the expected
// shape. Unlike Load, a missing file is an error here: Validate is for
// surfacing problems before tag-dependent validation begins.
func (s *Store) Validate() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &MalformedVocabularyError{Path: s.path, Reason: "file not found"}
		}
		return fmt.Errorf("read vocabulary: %w", err)
	}

	v, err := s.decode(data)
	if err != nil {
		return err
	}
	if v.Len() == 0 {
		return &MalformedVocabularyError{Path: s.path, Reason: "no tag groups defined"}
	}
	return nil
}

// Ensure interface compliance.
var _ ports.VocabularyStore = (*Store)(nil)

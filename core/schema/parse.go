package schema

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SchemaFileName is the per-type schema file inside each type directory.
const SchemaFileName = "schema.yaml"

// ParseFile parses a publication type from a YAML schema file.
// The containing directory's name becomes the type's directory.
func ParseFile(path string) (*PublicationType, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	t.SetDirectory(filepath.Base(filepath.Dir(path)))
	return t, nil
}

// Parse parses and validates a publication type from YAML bytes.
func Parse(data []byte) (*PublicationType, error) {
	var t PublicationType
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	t.Fields = withCreatedAt(t.Fields)
	t.CanonicalField = NormalizeFieldName(t.CanonicalField)
	t.SortField = NormalizeFieldName(t.SortField)

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseDir parses all publication types under a content root.
// Each immediate subdirectory containing a schema.yaml declares one type.
func ParseDir(dir string) ([]*PublicationType, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var types []*PublicationType
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		schemaPath := filepath.Join(dir, entry.Name(), SchemaFileName)
		if _, err := os.Stat(schemaPath); err != nil {
			continue
		}

		t, err := ParseFile(schemaPath)
		if err != nil {
			return nil, err
		}
		t.SetDirectory(entry.Name())
		types = append(types, t)
	}

	return types, nil
}

// Save writes the publication type's schema file into its directory under
// the given content root, creating the directory when missing.
func (t *PublicationType) Save(contentRoot string) error {
	dir := filepath.Join(contentRoot, t.Directory())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create type directory: %w", err)
	}

	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, SchemaFileName), data, 0o644); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}
	return nil
}

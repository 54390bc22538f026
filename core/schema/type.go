package schema

import (
	"fmt"

	"github.com/artpar/pubforge/pkg/slug"
)

// CreatedAtField is the reserved timestamp field implicitly present as the
// first field of every publication type.
const CreatedAtField = "__createdAt"

// InvalidSchemaError reports a structurally invalid publication type.
type InvalidSchemaError struct {
	Type   string
	Reason string
}

func (e *InvalidSchemaError) Error() string {
	return fmt.Sprintf("invalid publication type %q: %s", e.Type, e.Reason)
}

// PublicationType declares the schema for one kind of publication: its
// fields, the field that seeds filenames, and the listing sort policy.
// Types are created once by authoring tooling and read-only thereafter.
type PublicationType struct {
	// Name identifies the type. Two types are the same type when their
	// names match (case-sensitive).
	Name string `yaml:"name"`

	// Fields is the ordered field list. Names are unique within a type
	// and the reserved __createdAt field is always first.
	Fields []FieldDefinition `yaml:"fields"`

	// CanonicalField names the field whose value seeds identifiers.
	CanonicalField string `yaml:"canonicalField"`

	// SortField names the field listings are sorted by.
	SortField string `yaml:"sortField"`

	// SortAscending selects the listing sort direction.
	SortAscending bool `yaml:"sortAscending"`

	// PageSize is the listing page size; values above 0 enable pagination.
	PageSize int `yaml:"pageSize"`

	// directory is where this type's publications live, derived from
	// the name unless set explicitly at load time.
	directory string
}

// NewPublicationType constructs and validates a publication type.
// The reserved __createdAt datetime field is prepended unless the given
// fields already declare it.
func NewPublicationType(name string, fields []FieldDefinition, canonicalField, sortField string, sortAscending bool, pageSize int) (*PublicationType, error) {
	t := &PublicationType{
		Name:           name,
		Fields:         withCreatedAt(fields),
		CanonicalField: NormalizeFieldName(canonicalField),
		SortField:      NormalizeFieldName(sortField),
		SortAscending:  sortAscending,
		PageSize:       pageSize,
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// withCreatedAt ensures the reserved timestamp field leads the field list.
func withCreatedAt(fields []FieldDefinition) []FieldDefinition {
	for _, f := range fields {
		if f.Name == CreatedAtField {
			return fields
		}
	}
	out := make([]FieldDefinition, 0, len(fields)+1)
	out = append(out, FieldDefinition{Type: FieldTypeDatetime, Name: CreatedAtField})
	out = append(out, fields...)
	return out
}

// Validate checks the type's structural invariants.
func (t *PublicationType) Validate() error {
	if t.Name == "" {
		return &InvalidSchemaError{Type: t.Name, Reason: "name is required"}
	}
	if t.PageSize < 0 {
		return &InvalidSchemaError{Type: t.Name, Reason: "pageSize must not be negative"}
	}
	if len(t.Fields) == 0 {
		return &InvalidSchemaError{Type: t.Name, Reason: "at least one field is required"}
	}

	seen := make(map[string]bool, len(t.Fields))
	for _, f := range t.Fields {
		if err := f.Validate(); err != nil {
			return &InvalidSchemaError{Type: t.Name, Reason: err.Error()}
		}
		if seen[f.Name] {
			return &InvalidSchemaError{Type: t.Name, Reason: fmt.Sprintf("duplicate field name %q", f.Name)}
		}
		seen[f.Name] = true
	}

	if err := t.validateSelector("canonicalField", t.CanonicalField); err != nil {
		return err
	}
	return t.validateSelector("sortField", t.SortField)
}

// validateSelector checks that a canonical/sort selector names an existing,
// canonical-eligible field.
func (t *PublicationType) validateSelector(label, name string) error {
	if name == "" {
		return &InvalidSchemaError{Type: t.Name, Reason: label + " is required"}
	}
	f, ok := t.FieldByName(name)
	if !ok {
		return &InvalidSchemaError{Type: t.Name, Reason: fmt.Sprintf("%s %q does not name a field", label, name)}
	}
	if !f.Type.CanBeCanonical() {
		return &InvalidSchemaError{Type: t.Name, Reason: fmt.Sprintf("%s %q has type %s which is not canonical-eligible", label, name, f.Type)}
	}
	return nil
}

// GetFields returns the ordered field definitions.
func (t *PublicationType) GetFields() []FieldDefinition {
	return t.Fields
}

// FieldByName returns the field with the given name.
func (t *PublicationType) FieldByName(name string) (FieldDefinition, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

// CanonicalFieldNames returns names of fields whose types are eligible as
// canonical/sort fields, in declaration order. Boolean, media and tag
// fields never appear.
func (t *PublicationType) CanonicalFieldNames() []string {
	var names []string
	for _, f := range t.Fields {
		if f.Type.CanBeCanonical() {
			names = append(names, f.Name)
		}
	}
	return names
}

// Directory returns the workspace directory for this type's publications.
func (t *PublicationType) Directory() string {
	if t.directory != "" {
		return t.directory
	}
	return slug.Make(t.Name)
}

// SetDirectory overrides the derived directory, used when a schema file is
// loaded from a directory whose name differs from the type name's slug.
func (t *PublicationType) SetDirectory(dir string) {
	t.directory = dir
}

// Equals reports whether two types are the same type.
func (t *PublicationType) Equals(other *PublicationType) bool {
	return other != nil && t.Name == other.Name
}

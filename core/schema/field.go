package schema

import (
	"fmt"
	"strings"

	"github.com/artpar/pubforge/pkg/slug"
)

// FieldDefinition is one entry in the "fields" list of a publication type.
// Definitions are immutable after construction: the name is normalized once
// and the rule list is copied on read.
type FieldDefinition struct {
	// Type is the field type. See FieldType constants.
	Type FieldType `yaml:"type"`

	// Name identifies the field in front matter. Normalized to a
	// URL-safe token at construction.
	Name string `yaml:"name"`

	// Rules are custom validation rules merged after the type defaults.
	Rules []string `yaml:"rules,omitempty"`

	// TagGroup names the vocabulary group for tag fields.
	// Set if and only if Type is tag.
	TagGroup string `yaml:"tagGroup,omitempty"`
}

// NewFieldDefinition constructs a field definition with a normalized name.
func NewFieldDefinition(fieldType FieldType, name string, rules ...string) FieldDefinition {
	return FieldDefinition{
		Type:  fieldType,
		Name:  NormalizeFieldName(name),
		Rules: rules,
	}
}

// NewTagFieldDefinition constructs a tag field bound to a vocabulary group.
func NewTagFieldDefinition(name string, tagGroup string) FieldDefinition {
	return FieldDefinition{
		Type:     FieldTypeTag,
		Name:     NormalizeFieldName(name),
		TagGroup: tagGroup,
	}
}

// NormalizeFieldName converts a field name to a URL-safe token.
// Names containing whitespace become kebab-case; everything else is
// ASCII-folded in place. Normalization is idempotent.
func NormalizeFieldName(name string) string {
	if strings.ContainsAny(name, " \t\n") {
		return slug.Kebab(name)
	}
	return slug.ASCII(name)
}

// GetRules returns the effective static rules for the field: the type's
// default rules merged with the field's custom rules, in that order.
// Dynamic rules (media listings, tag vocabularies) are layered on by the
// validation package.
func (f FieldDefinition) GetRules() []string {
	defaults := f.Type.Rules()
	rules := make([]string, 0, len(defaults)+len(f.Rules))
	rules = append(rules, defaults...)
	rules = append(rules, f.Rules...)
	return rules
}

// Validate checks structural invariants of the definition.
func (f FieldDefinition) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("field name is required")
	}
	if _, err := ParseFieldType(string(f.Type)); err != nil {
		return fmt.Errorf("field %q: %w", f.Name, err)
	}
	if f.Type == FieldTypeTag && f.TagGroup == "" {
		return fmt.Errorf("field %q: tag fields require a tagGroup", f.Name)
	}
	if f.Type != FieldTypeTag && f.TagGroup != "" {
		return fmt.Errorf("field %q: tagGroup is only valid for tag fields", f.Name)
	}
	return nil
}

// UnmarshalYAML applies name normalization when loading definitions from disk.
func (f *FieldDefinition) UnmarshalYAML(unmarshal func(any) error) error {
	type plain FieldDefinition
	var p plain
	if err := unmarshal(&p); err != nil {
		return err
	}
	p.Name = NormalizeFieldName(p.Name)
	p.Type = FieldType(strings.ToLower(string(p.Type)))
	*f = FieldDefinition(p)
	return nil
}

package schema

import (
	"fmt"
	"strings"
)

// FieldType represents the type of a publication field.
// The set is closed: schemas referencing any other type token fail to load.
type FieldType string

const (
	FieldTypeString   FieldType = "string"
	FieldTypeDatetime FieldType = "datetime"
	FieldTypeBoolean  FieldType = "boolean"
	FieldTypeInteger  FieldType = "integer"
	FieldTypeFloat    FieldType = "float"
	FieldTypeMedia    FieldType = "media"
	FieldTypeArray    FieldType = "array"
	FieldTypeText     FieldType = "text"
	FieldTypeURL      FieldType = "url"
	FieldTypeTag      FieldType = "tag"
)

// ErrUnknownFieldType is returned when a type token is outside the closed set.
var ErrUnknownFieldType = fmt.Errorf("unknown field type")

// Types returns all field types in display order.
func Types() []FieldType {
	return []FieldType{
		FieldTypeString,
		FieldTypeDatetime,
		FieldTypeBoolean,
		FieldTypeInteger,
		FieldTypeFloat,
		FieldTypeMedia,
		FieldTypeArray,
		FieldTypeText,
		FieldTypeURL,
		FieldTypeTag,
	}
}

// Names returns human-readable names for all field types, in display order.
// Used by authoring tooling to offer type choices.
func Names() []string {
	types := Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = strings.ToUpper(string(t)[:1]) + string(t)[1:]
	}
	return names
}

// ParseFieldType resolves a type token to a FieldType.
// Tokens are matched case-insensitively.
func ParseFieldType(token string) (FieldType, error) {
	t := FieldType(strings.ToLower(strings.TrimSpace(token)))
	switch t {
	case FieldTypeString, FieldTypeDatetime, FieldTypeBoolean, FieldTypeInteger,
		FieldTypeFloat, FieldTypeMedia, FieldTypeArray, FieldTypeText,
		FieldTypeURL, FieldTypeTag:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFieldType, token)
	}
}

// Rules returns the default validation rules for a field type.
// Media and tag fields have deliberately empty defaults: their effective
// rules are dynamic, built from external state at validation time.
func (t FieldType) Rules() []string {
	switch t {
	case FieldTypeString, FieldTypeText:
		return []string{"string"}
	case FieldTypeDatetime:
		return []string{"date"}
	case FieldTypeBoolean:
		return []string{"boolean"}
	case FieldTypeInteger:
		return []string{"integer"}
	case FieldTypeFloat:
		return []string{"numeric"}
	case FieldTypeArray:
		return []string{"array"}
	case FieldTypeURL:
		return []string{"url"}
	default:
		return nil
	}
}

// CanBeCanonical reports whether the type may serve as a canonical or sort
// field. Booleans and externally enumerated values make poor unique
// identifiers, so they are excluded.
func (t FieldType) CanBeCanonical() bool {
	switch t {
	case FieldTypeString, FieldTypeText, FieldTypeInteger, FieldTypeFloat,
		FieldTypeDatetime, FieldTypeArray, FieldTypeURL:
		return true
	default:
		return false
	}
}

// CanonicalTypes returns the field types eligible as canonical/sort fields.
func CanonicalTypes() []FieldType {
	var eligible []FieldType
	for _, t := range Types() {
		if t.CanBeCanonical() {
			eligible = append(eligible, t)
		}
	}
	return eligible
}

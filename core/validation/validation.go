// Package validation assembles effective rule sets for publication
// fields and validates values and whole records against them.
//
// Static rules come from the field type's defaults and the field's own
// rule list. Dynamic rules depend on external state: media fields accept
// only the files currently in the type's media directory, and tag fields
// accept only the values of their vocabulary group. Dynamic state is
// passed in as an explicit Sources snapshot so the rule engine itself
// stays pure.
package validation

import (
	"fmt"
	"strings"

	"github.com/artpar/pubforge/core/schema"
	"github.com/artpar/pubforge/domain/document"
	"github.com/artpar/pubforge/domain/tags"
	"github.com/artpar/pubforge/ports"
)

// Sources is a snapshot of the dynamic state rule assembly draws from.
type Sources struct {
	// Vocabulary provides the tag groups. Nil is treated as empty.
	Vocabulary *tags.Vocabulary

	// Media lists the filenames available to media fields of the type
	// being validated.
	Media []string
}

// EmptyOptionsError reports a required media or tag field whose dynamic
// option source is empty: no value could ever satisfy the field.
type EmptyOptionsError struct {
	Field  string
	Source string
}

func (e *EmptyOptionsError) Error() string {
	return fmt.Sprintf("field %q requires a value but %s offers no options", e.Field, e.Source)
}

// EffectiveRules returns the full rule list for a field: type defaults,
// then custom rules, then the dynamic membership rule for media and tag
// fields. The dynamic rule is emitted even when the source is empty, so
// a supplied value against an empty source still fails membership.
func EffectiveRules(field schema.FieldDefinition, src Sources) []schema.Rule {
	static := field.GetRules()
	rules := make([]schema.Rule, 0, len(static)+1)
	for _, r := range static {
		rules = append(rules, schema.Rule(r))
	}

	switch field.Type {
	case schema.FieldTypeMedia:
		rules = append(rules, inRule(src.Media))
	case schema.FieldTypeTag:
		rules = append(rules, inRule(src.tagValues(field.TagGroup)))
	}
	return rules
}

// ValidateField validates a single value against a field's effective
// rules. A required media or tag field with an empty option source is a
// configuration problem rather than a value problem, and is reported as
// *EmptyOptionsError.
func ValidateField(field schema.FieldDefinition, value any, src Sources) (schema.ValidationResult, error) {
	if err := checkOptions(field, src); err != nil {
		return schema.ValidationResult{}, err
	}

	result := schema.ValidationResult{Valid: true}
	for _, rule := range EffectiveRules(field, src) {
		// Absent values only answer to "required"; every other rule
		// constrains a value that is actually present.
		if value == nil && rule.Name() != "required" {
			continue
		}
		if ruleErr := schema.ValidateRule(field.Name, value, rule); ruleErr != nil {
			result.Valid = false
			result.Errors = append(result.Errors, *ruleErr)
		}
	}
	return result, nil
}

// ValidateRecord validates front matter against every field of a type.
// Fields absent from the matter are validated as nil, so required
// fields surface as errors while optional ones pass.
func ValidateRecord(pubType *schema.PublicationType, matter *document.Matter, src Sources) (schema.ValidationResult, error) {
	result := schema.ValidationResult{Valid: true}
	for _, field := range pubType.GetFields() {
		var value any
		if matter != nil {
			value, _ = matter.Get(field.Name)
		}
		fieldResult, err := ValidateField(field, value, src)
		if err != nil {
			return schema.ValidationResult{}, err
		}
		if !fieldResult.Valid {
			result.Valid = false
			result.Errors = append(result.Errors, fieldResult.Errors...)
		}
	}
	return result, nil
}

// checkOptions rejects required dynamic fields with no options to offer.
func checkOptions(field schema.FieldDefinition, src Sources) error {
	if !hasRule(field.Rules, "required") {
		return nil
	}
	switch field.Type {
	case schema.FieldTypeMedia:
		if len(src.Media) == 0 {
			return &EmptyOptionsError{Field: field.Name, Source: "the media directory"}
		}
	case schema.FieldTypeTag:
		if len(src.tagValues(field.TagGroup)) == 0 {
			return &EmptyOptionsError{Field: field.Name, Source: fmt.Sprintf("tag group %q", field.TagGroup)}
		}
	}
	return nil
}

func (s Sources) tagValues(group string) []string {
	if s.Vocabulary == nil {
		return nil
	}
	return s.Vocabulary.ValuesFor(group)
}

func hasRule(rules []string, name string) bool {
	for _, r := range rules {
		if schema.Rule(r).Name() == name {
			return true
		}
	}
	return false
}

func inRule(options []string) schema.Rule {
	return schema.Rule("in:" + strings.Join(options, ","))
}

// Validator binds the rule engine to live vocabulary and media state.
// It is the validation entry point used by the HTTP surface and the CLI.
type Validator struct {
	vocab ports.VocabularyStore
	media ports.MediaInventory
}

// NewValidator creates a validator over the given stores.
func NewValidator(vocab ports.VocabularyStore, media ports.MediaInventory) *Validator {
	return &Validator{vocab: vocab, media: media}
}

// SourcesFor snapshots the dynamic state for one publication type.
func (v *Validator) SourcesFor(typeDirectory string) (Sources, error) {
	vocabulary, err := v.vocab.Load()
	if err != nil {
		return Sources{}, fmt.Errorf("load tag vocabulary: %w", err)
	}
	media, err := v.media.ListForType(typeDirectory)
	if err != nil {
		return Sources{}, fmt.Errorf("list media: %w", err)
	}
	return Sources{Vocabulary: vocabulary, Media: media}, nil
}

// ValidateRecord snapshots the dynamic state and validates front matter
// against the type.
func (v *Validator) ValidateRecord(pubType *schema.PublicationType, matter *document.Matter) (schema.ValidationResult, error) {
	src, err := v.SourcesFor(pubType.Directory())
	if err != nil {
		return schema.ValidationResult{}, err
	}
	return ValidateRecord(pubType, matter, src)
}

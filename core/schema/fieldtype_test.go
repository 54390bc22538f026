package schema

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseFieldType(t *testing.T) {
	tests := []struct {
		token    string
		expected FieldType
		wantErr  bool
	}{
		{"string", FieldTypeString, false},
		{"String", FieldTypeString, false},
		{"DATETIME", FieldTypeDatetime, false},
		{" url ", FieldTypeURL, false},
		{"tag", FieldTypeTag, false},
		{"json", "", true},
		{"", "", true},
		{"strings", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseFieldType(tt.token)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownFieldType) {
					t.Errorf("ParseFieldType(%q) error = %v, want ErrUnknownFieldType", tt.token, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFieldType(%q) unexpected error: %v", tt.token, err)
			}
			if got != tt.expected {
				t.Errorf("ParseFieldType(%q) = %v, want %v", tt.token, got, tt.expected)
			}
		})
	}
}

func TestFieldTypeRules(t *testing.T) {
	// The default rule table is fixed: a type must never change its
	// rule-set between calls, and media/tag are deliberately empty.
	tests := []struct {
		fieldType FieldType
		expected  []string
	}{
		{FieldTypeString, []string{"string"}},
		{FieldTypeText, []string{"string"}},
		{FieldTypeDatetime, []string{"date"}},
		{FieldTypeBoolean, []string{"boolean"}},
		{FieldTypeInteger, []string{"integer"}},
		{FieldTypeFloat, []string{"numeric"}},
		{FieldTypeArray, []string{"array"}},
		{FieldTypeURL, []string{"url"}},
		{FieldTypeMedia, nil},
		{FieldTypeTag, nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.fieldType), func(t *testing.T) {
			first := tt.fieldType.Rules()
			if !reflect.DeepEqual(first, tt.expected) {
				t.Errorf("%s.Rules() = %v, want %v", tt.fieldType, first, tt.expected)
			}
			if second := tt.fieldType.Rules(); !reflect.DeepEqual(first, second) {
				t.Errorf("%s.Rules() changed between calls: %v then %v", tt.fieldType, first, second)
			}
		})
	}
}

func TestFieldTypeCanBeCanonical(t *testing.T) {
	eligible := map[FieldType]bool{
		FieldTypeString:   true,
		FieldTypeText:     true,
		FieldTypeInteger:  true,
		FieldTypeFloat:    true,
		FieldTypeDatetime: true,
		FieldTypeArray:    true,
		FieldTypeURL:      true,
		FieldTypeBoolean:  false,
		FieldTypeMedia:    false,
		FieldTypeTag:      false,
	}

	for _, ft := range Types() {
		if got := ft.CanBeCanonical(); got != eligible[ft] {
			t.Errorf("%s.CanBeCanonical() = %v, want %v", ft, got, eligible[ft])
		}
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != len(Types()) {
		t.Fatalf("Names() returned %d entries, want %d", len(names), len(Types()))
	}
	if names[0] != "String" {
		t.Errorf("Names()[0] = %q, want %q", names[0], "String")
	}
	for _, n := range names {
		if n == "" {
			t.Error("Names() contains an empty entry")
		}
	}
}

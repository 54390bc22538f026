package tagstore

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/artpar/pubforge/domain/tags"
)

func storeAt(t *testing.T, content string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return New(path)
}

func TestLoadMissingFileYieldsEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope", DefaultFileName))
	v, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if v.Len() != 0 {
		t.Errorf("Len() = %d, want 0", v.Len())
	}
}

func TestLoadPreservesGroupOrder(t *testing.T) {
	s := storeAt(t, "zebra:\n  - z1\nalpha:\n  - a1\n  - a2\n")

	v, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got := v.GroupNames(); !reflect.DeepEqual(got, []string{"zebra", "alpha"}) {
		t.Errorf("GroupNames() = %v, want file order [zebra alpha]", got)
	}
	if got := v.ValuesFor("alpha"); !reflect.DeepEqual(got, []string{"a1", "a2"}) {
		t.Errorf("ValuesFor(alpha) = %v, want [a1 a2]", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), DefaultFileName))

	v := tags.New()
	v.AddGroup("cats", []string{"news", "sports"})
	v.AddGroup("topics", []string{"go"})

	if err := s.Save(v); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	back, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	for _, group := range v.GroupNames() {
		if !reflect.DeepEqual(back.ValuesFor(group), v.ValuesFor(group)) {
			t.Errorf("round-trip ValuesFor(%q) = %v, want %v", group, back.ValuesFor(group), v.ValuesFor(group))
		}
	}
	if back.Len() != v.Len() {
		t.Errorf("round-trip Len() = %d, want %d", back.Len(), v.Len())
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := storeAt(t, "old:\n  - gone\n")

	v := tags.New().AddGroup("new", []string{"kept"})
	if err := s.Save(v); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	back, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if back.Has("old") {
		t.Error("Save() did not overwrite the previous document")
	}
	if !back.Has("new") {
		t.Error("Save() lost the new group")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		create  bool
		wantErr bool
	}{
		{"valid mapping", "cats:\n  - news\n  - sports\n", true, false},
		{"missing file", "", false, true},
		{"scalar document", "just a string\n", true, true},
		{"sequence document", "- a\n- b\n", true, true},
		{"group not a sequence", "cats: news\n", true, true},
		{"non-string member", "cats:\n  - news\n  - 42\n", true, true},
		{"non-string key", "123:\n  - a\n", true, true},
		{"empty mapping", "{}\n", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s *Store
			if tt.create {
				s = storeAt(t, tt.content)
			} else {
				s = New(filepath.Join(t.TempDir(), DefaultFileName))
			}

			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var mve *MalformedVocabularyError
				if !errors.As(err, &mve) {
					t.Errorf("error type = %T, want *MalformedVocabularyError", err)
				}
			}
		})
	}
}

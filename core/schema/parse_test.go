package schema

import (
	"os"
	"path/filepath"
	"testing"
)

const testSchema = `
name: Blog Posts
fields:
  - type: string
    name: title
    rules: ["min:2", "max:128"]
  - type: tag
    name: category
    tagGroup: cats
  - type: media
    name: cover
canonicalField: title
sortField: __createdAt
sortAscending: false
pageSize: 25
`

func TestParse(t *testing.T) {
	pt, err := Parse([]byte(testSchema))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if pt.Name != "Blog Posts" {
		t.Errorf("Name = %q, want %q", pt.Name, "Blog Posts")
	}
	if pt.Fields[0].Name != CreatedAtField {
		t.Errorf("first field = %q, want implicit %s", pt.Fields[0].Name, CreatedAtField)
	}
	if pt.CanonicalField != "title" {
		t.Errorf("CanonicalField = %q, want title", pt.CanonicalField)
	}
	if pt.SortField != CreatedAtField {
		t.Errorf("SortField = %q, want %s", pt.SortField, CreatedAtField)
	}
	if pt.SortAscending {
		t.Error("SortAscending = true, want false")
	}
	if pt.PageSize != 25 {
		t.Errorf("PageSize = %d, want 25", pt.PageSize)
	}

	f, ok := pt.FieldByName("category")
	if !ok {
		t.Fatal("category field missing")
	}
	if f.TagGroup != "cats" {
		t.Errorf("TagGroup = %q, want cats", f.TagGroup)
	}
}

func TestParseRejectsUnknownType(t *testing.T) {
	_, err := Parse([]byte(`
name: posts
fields:
  - type: blob
    name: body
canonicalField: body
sortField: body
`))
	if err == nil {
		t.Fatal("Parse() accepted an unknown field type")
	}
}

func TestParseRejectsIneligibleCanonicalField(t *testing.T) {
	_, err := Parse([]byte(`
name: posts
fields:
  - type: boolean
    name: published
  - type: string
    name: title
canonicalField: published
sortField: title
`))
	if err == nil {
		t.Fatal("Parse() accepted a boolean canonical field")
	}
}

func TestParseDirAndRoundTrip(t *testing.T) {
	root := t.TempDir()

	pt, err := Parse([]byte(testSchema))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if err := pt.Save(root); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	// Non-type directories and stray files are skipped.
	if err := os.MkdirAll(filepath.Join(root, "empty-dir"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	types, err := ParseDir(root)
	if err != nil {
		t.Fatalf("ParseDir() error: %v", err)
	}
	if len(types) != 1 {
		t.Fatalf("ParseDir() found %d types, want 1", len(types))
	}

	loaded := types[0]
	if !loaded.Equals(pt) {
		t.Errorf("round-trip changed identity: %q != %q", loaded.Name, pt.Name)
	}
	if loaded.Directory() != "blog-posts" {
		t.Errorf("Directory() = %q, want blog-posts", loaded.Directory())
	}
	if loaded.PageSize != pt.PageSize {
		t.Errorf("PageSize = %d, want %d", loaded.PageSize, pt.PageSize)
	}
}

func TestParseDirMissingRoot(t *testing.T) {
	types, err := ParseDir(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("ParseDir() on missing root: %v", err)
	}
	if types != nil {
		t.Errorf("ParseDir() = %v, want nil", types)
	}
}

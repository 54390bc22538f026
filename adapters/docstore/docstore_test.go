package docstore

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/artpar/pubforge/domain/document"
)

func sampleDocument() *document.Document {
	matter := document.NewMatter()
	matter.Set("__createdAt", "2024-06-01 12:00:00")
	matter.Set("title", "Hello World")
	matter.Set("likes", 42)
	return document.New("posts", "hello-world", matter, "## Write something awesome.\n\n")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	doc := sampleDocument()

	if err := store.Save(doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load("posts/hello-world")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Identifier != "posts/hello-world" {
		t.Errorf("Identifier = %q", got.Identifier)
	}
	if got.Body != doc.Body {
		t.Errorf("Body = %q, want %q", got.Body, doc.Body)
	}
	if !reflect.DeepEqual(got.Matter.Keys(), []string{"__createdAt", "title", "likes"}) {
		t.Errorf("field order not preserved: %v", got.Matter.Keys())
	}
	title, _ := got.Matter.Get("title")
	if title != "Hello World" {
		t.Errorf("title = %v", title)
	}
}

func TestEncodeLayout(t *testing.T) {
	data, err := Encode(sampleDocument())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	text := string(data)

	if !strings.HasPrefix(text, "---\n__createdAt:") {
		t.Errorf("front matter does not open correctly:\n%s", text)
	}
	if !strings.Contains(text, "\n---\n## Write something awesome.") {
		t.Errorf("body does not follow closing fence:\n%s", text)
	}
}

func TestDecodeWithoutFrontMatter(t *testing.T) {
	matter, body, err := Decode([]byte("just a body\n"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if matter.Len() != 0 {
		t.Errorf("expected empty matter, got %v", matter.Keys())
	}
	if body != "just a body\n" {
		t.Errorf("body = %q", body)
	}
}

func TestDecodeMalformedFrontMatter(t *testing.T) {
	if _, _, err := Decode([]byte("---\n- not\n- a\n- mapping\n---\nbody\n")); err == nil {
		t.Error("expected error for sequence front matter")
	}
}

func TestListForType(t *testing.T) {
	root := t.TempDir()
	store := New(root)

	for _, id := range []string{"posts/zulu", "posts/alpha", "posts/mike"} {
		doc := document.New("posts", id, nil, "")
		if err := store.Save(doc); err != nil {
			t.Fatalf("Save %s: %v", id, err)
		}
	}
	// Stray non-markdown files are ignored.
	if err := os.WriteFile(filepath.Join(root, "posts", "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := store.ListForType("posts")
	if err != nil {
		t.Fatalf("ListForType: %v", err)
	}
	want := []string{"posts/alpha", "posts/mike", "posts/zulu"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListForType = %v, want %v", got, want)
	}
}

func TestListForTypeMissingDirectory(t *testing.T) {
	store := New(t.TempDir())
	got, err := store.ListForType("nowhere")
	if err != nil {
		t.Fatalf("ListForType: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty listing, got %v", got)
	}
}

func TestSaveOverwrites(t *testing.T) {
	store := New(t.TempDir())

	first := document.New("posts", "same", nil, "first\n")
	if err := store.Save(first); err != nil {
		t.Fatal(err)
	}
	second := document.New("posts", "same", nil, "second\n")
	if err := store.Save(second); err != nil {
		t.Fatal(err)
	}

	got, err := store.Load("posts/same")
	if err != nil {
		t.Fatal(err)
	}
	if got.Body != "second\n" {
		t.Errorf("Body = %q, want overwrite", got.Body)
	}
}

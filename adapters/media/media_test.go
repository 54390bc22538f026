package media

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestListForType(t *testing.T) {
	root := t.TempDir()

	postsDir := filepath.Join(root, "posts")
	if err := os.MkdirAll(postsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"zebra.png", "apple.jpg", "notes.txt", "clip.mp4", "logo.SVG"} {
		if err := os.WriteFile(filepath.Join(postsDir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	// Nested directories are not part of the inventory.
	if err := os.MkdirAll(filepath.Join(postsDir, "archive"), 0o755); err != nil {
		t.Fatal(err)
	}

	inv := New(root)

	got, err := inv.ListForType("posts")
	if err != nil {
		t.Fatalf("ListForType: %v", err)
	}
	want := []string{"apple.jpg", "clip.mp4", "logo.SVG", "zebra.png"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListForType = %v, want %v", got, want)
	}
}

func TestListForTypeMissingDirectory(t *testing.T) {
	inv := New(t.TempDir())

	got, err := inv.ListForType("nowhere")
	if err != nil {
		t.Fatalf("ListForType: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty listing for missing directory, got %v", got)
	}
}

func TestIsMediaFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"photo.png", true},
		{"photo.PNG", true},
		{"movie.mp4", true},
		{"track.mp3", true},
		{"image.avif", true},
		{"readme.md", false},
		{"notes.txt", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := isMediaFile(tt.name); got != tt.want {
			t.Errorf("isMediaFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

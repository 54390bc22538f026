package seeder

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/artpar/pubforge/adapters/clock"
	"github.com/artpar/pubforge/adapters/docstore"
	"github.com/artpar/pubforge/adapters/random"
	"github.com/artpar/pubforge/adapters/tagstore"
	"github.com/artpar/pubforge/core/schema"
	"github.com/artpar/pubforge/domain/tags"
	"github.com/artpar/pubforge/pkg/slug"
)

func testSeeder(t *testing.T) (*Seeder, *docstore.Store) {
	t.Helper()
	root := t.TempDir()

	store := tagstore.New(filepath.Join(root, "tags.yml"))
	vocab := tags.New()
	vocab.AddGroup("topics", []string{"go", "web", "infra"})
	if err := store.Save(vocab); err != nil {
		t.Fatal(err)
	}

	docs := docstore.New(filepath.Join(root, "content"))
	fixed := clock.NewFake(time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC))

	return New(fixed, random.NewFake(42), store, docs, zerolog.Nop()), docs
}

func postsType(t *testing.T) *schema.PublicationType {
	t.Helper()
	pt, err := schema.NewPublicationType("Blog Posts", []schema.FieldDefinition{
		schema.NewFieldDefinition(schema.FieldTypeString, "title", "required"),
		schema.NewFieldDefinition(schema.FieldTypeInteger, "likes"),
		schema.NewFieldDefinition(schema.FieldTypeBoolean, "featured"),
		schema.NewFieldDefinition(schema.FieldTypeDatetime, "published-at"),
		schema.NewFieldDefinition(schema.FieldTypeFloat, "rating"),
		schema.NewFieldDefinition(schema.FieldTypeArray, "keywords"),
		schema.NewFieldDefinition(schema.FieldTypeText, "summary"),
		schema.NewFieldDefinition(schema.FieldTypeURL, "source"),
		schema.NewFieldDefinition(schema.FieldTypeMedia, "cover"),
		schema.NewTagFieldDefinition("topic", "topics"),
	}, "title", "title", true, 10)
	if err != nil {
		t.Fatal(err)
	}
	return pt
}

func TestSeedCountAndPersistence(t *testing.T) {
	s, docs := testSeeder(t)
	pt := postsType(t)

	seeded, err := s.Seed(pt, 5)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if len(seeded) != 5 {
		t.Fatalf("seeded %d documents, want 5", len(seeded))
	}

	for _, doc := range seeded {
		if !strings.HasPrefix(doc.Identifier, "blog-posts/") {
			t.Errorf("identifier %q missing type directory prefix", doc.Identifier)
		}
		if _, err := docs.Load(doc.Identifier); err != nil {
			t.Errorf("seeded document not persisted: %v", err)
		}
	}
}

func TestSeedMatterShape(t *testing.T) {
	s, _ := testSeeder(t)
	pt := postsType(t)

	seeded, err := s.Seed(pt, 20)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}

	for _, doc := range seeded {
		keys := doc.Matter.Keys()
		if keys[0] != schema.CreatedAtField {
			t.Fatalf("first field = %q, want %s", keys[0], schema.CreatedAtField)
		}
		if len(keys) != len(pt.GetFields()) {
			t.Fatalf("matter has %d fields, want %d", len(keys), len(pt.GetFields()))
		}

		createdAt, _ := doc.Matter.Get(schema.CreatedAtField)
		if _, err := time.Parse("2006-01-02 15:04:05", createdAt.(string)); err != nil {
			t.Errorf("createdAt %v not in datetime layout", createdAt)
		}

		title, _ := doc.Matter.Get("title")
		str := title.(string)
		if len(str) < 1 || len(str) > 255 {
			t.Errorf("title length %d outside [1,255]", len(str))
		}

		likes, _ := doc.Matter.Get("likes")
		if n := likes.(int); n < -100000 || n > 100000 {
			t.Errorf("likes %d outside [-100000,100000]", n)
		}

		rating, _ := doc.Matter.Get("rating")
		if f := rating.(float64); f < -100000 || f > 100000 {
			t.Errorf("rating %v outside range", f)
		}

		keywords, _ := doc.Matter.Get("keywords")
		if items := keywords.([]string); len(items) < 3 || len(items) > 20 {
			t.Errorf("keywords has %d items, want 3..20", len(items))
		}

		source, _ := doc.Matter.Get("source")
		if !strings.HasPrefix(source.(string), "https://example.com/") {
			t.Errorf("source = %v", source)
		}

		cover, _ := doc.Matter.Get("cover")
		if !strings.HasPrefix(cover.(string), "https://picsum.photos/id/") {
			t.Errorf("cover = %v", cover)
		}

		topic, _ := doc.Matter.Get("topic")
		switch topic.(string) {
		case "go", "web", "infra":
		default:
			t.Errorf("topic %v not from vocabulary group", topic)
		}
	}
}

func TestSeedIdentifierFromCanonicalValue(t *testing.T) {
	s, _ := testSeeder(t)
	pt := postsType(t)

	seeded, err := s.Seed(pt, 10)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}

	for _, doc := range seeded {
		title, _ := doc.Matter.Get("title")
		seed := title.(string)
		if len(seed) > 64 {
			seed = seed[:64]
		}
		want := "blog-posts/" + slug.Make(seed)
		if doc.Identifier != want {
			t.Errorf("identifier = %q, want %q", doc.Identifier, want)
		}
	}
}

func TestSeedCanonicalFallback(t *testing.T) {
	// With the timestamp field as canonical selector no field loop
	// capture happens, so the identifier comes from a filler sentence.
	pt, err := schema.NewPublicationType("Notes", []schema.FieldDefinition{
		schema.NewFieldDefinition(schema.FieldTypeBoolean, "pinned"),
	}, schema.CreatedAtField, schema.CreatedAtField, false, 0)
	if err != nil {
		t.Fatal(err)
	}

	s, _ := testSeeder(t)
	seeded, err := s.Seed(pt, 3)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	for _, doc := range seeded {
		base := doc.Basename()
		if base == "" {
			t.Error("empty identifier")
		}
		if got := strings.Count(base, "-"); got != 2 {
			t.Errorf("identifier %q should slug a three word sentence", base)
		}
	}
}

func TestSeedBody(t *testing.T) {
	s, _ := testSeeder(t)

	seeded, err := s.Seed(postsType(t), 10)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	for _, doc := range seeded {
		if !strings.HasPrefix(doc.Body, "## Write something awesome.\n\n") {
			t.Errorf("body missing heading: %q", doc.Body)
		}
		if !strings.HasSuffix(doc.Body, "\n\n") {
			t.Errorf("body missing trailing blank line: %q", doc.Body)
		}
	}
}

func TestSeedEmptyTagGroup(t *testing.T) {
	root := t.TempDir()
	store := tagstore.New(filepath.Join(root, "tags.yml"))
	docs := docstore.New(filepath.Join(root, "content"))
	fixed := clock.NewFake(time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC))
	s := New(fixed, random.NewFake(7), store, docs, zerolog.Nop())

	pt, err := schema.NewPublicationType("Posts", []schema.FieldDefinition{
		schema.NewFieldDefinition(schema.FieldTypeString, "title"),
		schema.NewTagFieldDefinition("topic", "missing"),
	}, "title", "title", true, 0)
	if err != nil {
		t.Fatal(err)
	}

	seeded, err := s.Seed(pt, 2)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	for _, doc := range seeded {
		topic, _ := doc.Matter.Get("topic")
		if topic != "" {
			t.Errorf("topic = %v, want empty for missing group", topic)
		}
	}

	// Nothing created the vocabulary file; Seed must still work.
	if _, err := os.Stat(filepath.Join(root, "tags.yml")); !os.IsNotExist(err) {
		t.Errorf("unexpected vocabulary file: %v", err)
	}
}

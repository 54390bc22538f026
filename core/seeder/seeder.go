// Package seeder synthesizes random publications for a type: one value
// per field following the type's field definitions, an identifier
// slugged from the canonical field's value, and a filler markdown body.
// Seeded documents are meant as realistic fixtures for theme and
// listing development.
package seeder

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/artpar/pubforge/core/schema"
	"github.com/artpar/pubforge/domain/document"
	"github.com/artpar/pubforge/domain/tags"
	"github.com/artpar/pubforge/pkg/slug"
	"github.com/artpar/pubforge/ports"
)

const (
	// datetimeFormat is the front matter timestamp layout.
	datetimeFormat = "2006-01-02 15:04:05"

	// bodyHeading opens every seeded body.
	bodyHeading = "## Write something awesome.\n\n"

	// identifierSeedLength caps how much of the canonical value feeds
	// the identifier slug.
	identifierSeedLength = 64
)

// Seeder generates and persists random publications.
type Seeder struct {
	clock ports.Clock
	rng   ports.Random
	vocab ports.VocabularyStore
	docs  ports.DocumentStore
	log   zerolog.Logger
}

// New creates a seeder over the given providers.
func New(clock ports.Clock, rng ports.Random, vocab ports.VocabularyStore, docs ports.DocumentStore, log zerolog.Logger) *Seeder {
	return &Seeder{clock: clock, rng: rng, vocab: vocab, docs: docs, log: log}
}

// Seed generates count publications for the type and saves each one.
// Identifier collisions within or across batches silently overwrite,
// and a failed save aborts the batch without rolling back earlier
// documents.
func (s *Seeder) Seed(pubType *schema.PublicationType, count int) ([]*document.Document, error) {
	vocabulary, err := s.vocab.Load()
	if err != nil {
		return nil, fmt.Errorf("load tag vocabulary: %w", err)
	}

	docs := make([]*document.Document, 0, count)
	for i := 0; i < count; i++ {
		doc := s.generate(pubType, vocabulary)
		if err := s.docs.Save(doc); err != nil {
			return docs, fmt.Errorf("save %s: %w", doc.Identifier, err)
		}
		s.log.Debug().
			Str("type", pubType.Name).
			Str("identifier", doc.Identifier).
			Msg("seeded publication")
		docs = append(docs, doc)
	}
	return docs, nil
}

// generate builds one publication: front matter in schema order, the
// canonical-derived identifier, and a filler body.
func (s *Seeder) generate(pubType *schema.PublicationType, vocabulary *tags.Vocabulary) *document.Document {
	matter := document.NewMatter()
	canonicalValue := ""

	matter.Set(schema.CreatedAtField, s.createdAt().Format(datetimeFormat))

	for _, field := range pubType.GetFields() {
		if field.Name == schema.CreatedAtField {
			continue
		}
		value := s.generateValue(field, vocabulary)
		matter.Set(field.Name, value)

		if field.Name == pubType.CanonicalField && field.Type.CanBeCanonical() {
			canonicalValue = stringify(value)
		}
	}

	if canonicalValue == "" {
		canonicalValue = s.sentence(3)
	}

	identifier := slug.Make(truncate(canonicalValue, identifierSeedLength))
	body := bodyHeading + s.markdownLines(s.randBetween(0, 16)) + "\n\n"

	return document.New(pubType.Directory(), identifier, matter, body)
}

// generateValue synthesizes a value for one field.
func (s *Seeder) generateValue(field schema.FieldDefinition, vocabulary *tags.Vocabulary) any {
	switch field.Type {
	case schema.FieldTypeArray:
		return s.arrayItems()
	case schema.FieldTypeBoolean:
		return s.rng.Intn(100) < 50
	case schema.FieldTypeDatetime:
		return s.pastDatetime().Format(datetimeFormat)
	case schema.FieldTypeFloat:
		return s.rng.Float64()*200000 - 100000
	case schema.FieldTypeMedia:
		return fmt.Sprintf("https://picsum.photos/id/%d/400/400", s.randBetween(1, 1000))
	case schema.FieldTypeInteger:
		return s.randBetween(-100000, 100000)
	case schema.FieldTypeString:
		return truncate(s.sentence(10), s.randBetween(1, 255))
	case schema.FieldTypeTag:
		return s.tagValue(field.TagGroup, vocabulary)
	case schema.FieldTypeText:
		return s.textLines(s.randBetween(3, 20))
	case schema.FieldTypeURL:
		return "https://example.com/" + s.word()
	default:
		return nil
	}
}

// createdAt places the record's timestamp between roughly one day and
// one year in the past.
func (s *Seeder) createdAt() time.Time {
	today := s.clock.Now().Truncate(24 * time.Hour)
	return today.
		AddDate(0, 0, -s.randBetween(1, 360)).
		Add(time.Duration(s.randBetween(0, 86400)) * time.Second)
}

// pastDatetime picks a uniform moment within the past year for
// datetime field values.
func (s *Seeder) pastDatetime() time.Time {
	now := s.clock.Now()
	spanSeconds := 364 * 86400
	return now.Add(-time.Duration(s.randBetween(86400, 86400+spanSeconds)) * time.Second)
}

func (s *Seeder) tagValue(group string, vocabulary *tags.Vocabulary) string {
	if vocabulary == nil {
		return ""
	}
	values := vocabulary.ValuesFor(group)
	if len(values) == 0 {
		return ""
	}
	return values[s.rng.Intn(len(values))]
}

func (s *Seeder) arrayItems() []string {
	items := make([]string, s.randBetween(3, 20))
	for i := range items {
		items[i] = s.word()
	}
	return items
}

// textLines builds a multi-line prose value, one sentence per line.
func (s *Seeder) textLines(lines int) string {
	var b strings.Builder
	for i := 0; i < lines; i++ {
		b.WriteString(s.sentence(s.randBetween(5, 20)))
		b.WriteByte('\n')
	}
	return b.String()
}

// markdownLines builds the random part of the filler body.
func (s *Seeder) markdownLines(count int) string {
	lines := make([]string, count)
	for i := range lines {
		lines[i] = s.sentence(s.randBetween(1, 15))
	}
	return strings.Join(lines, "\n")
}

// sentence joins n random words, capitalized and terminated.
func (s *Seeder) sentence(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = s.word()
	}
	text := strings.Join(parts, " ")
	if text == "" {
		return "."
	}
	return strings.ToUpper(text[:1]) + text[1:] + "."
}

func (s *Seeder) word() string {
	return words[s.rng.Intn(len(words))]
}

// randBetween returns a uniform int in [lo, hi].
func (s *Seeder) randBetween(lo, hi int) int {
	return lo + s.rng.Intn(hi-lo+1)
}

// stringify renders a canonical value as identifier seed text.
func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, " ")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// truncate limits a string to n bytes; values are ASCII here.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

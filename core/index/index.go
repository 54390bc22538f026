// Package index maintains a SQLite-backed listing index over published
// documents. Each publication type gets one table derived from its
// field definitions, and listings are served sorted and paginated by
// the type's own sort policy instead of rescanning the content tree.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/artpar/pubforge/core/schema"
	"github.com/artpar/pubforge/domain/document"
)

// Record is one indexed publication row.
type Record struct {
	// ID is the stable row id, assigned at first indexing.
	ID string `json:"id"`

	// Identifier is the document identifier within the content tree.
	Identifier string `json:"identifier"`

	// Fields holds the indexed front matter values by field name.
	Fields map[string]any `json:"fields"`
}

// Page is one listing page.
type Page struct {
	Records []Record `json:"records"`
	Total   int64    `json:"total"`
	Number  int      `json:"page"`
	Size    int      `json:"pageSize"`
}

// Index is the SQLite-backed publication index.
type Index struct {
	db *sql.DB
	mu sync.RWMutex

	// tables tracks which types have been ensured this process
	tables map[string]bool
}

// New opens or creates an index database at the given path.
func New(path string) (*Index, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open index database: %w", err)
	}

	pragmas := []string{
		"PRAGMA synchronous = NORMAL",
		"PRAGMA cache_size = -64000",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	return &Index{db: db, tables: make(map[string]bool)}, nil
}

// NewFromDB creates an index over an existing connection.
func NewFromDB(db *sql.DB) *Index {
	return &Index{db: db, tables: make(map[string]bool)}
}

// EnsureTable creates the table for a publication type if needed.
func (x *Index) EnsureTable(ctx context.Context, t *schema.PublicationType) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if _, err := x.db.ExecContext(ctx, buildCreateTableSQL(t)); err != nil {
		return fmt.Errorf("create table for %s: %w", t.Name, err)
	}
	indexSQL := fmt.Sprintf(
		"CREATE INDEX IF NOT EXISTS idx_%s_sort ON %s(%s)",
		tableName(t), tableName(t), quoteColumn(t.SortField),
	)
	if _, err := x.db.ExecContext(ctx, indexSQL); err != nil {
		return fmt.Errorf("create sort index for %s: %w", t.Name, err)
	}

	x.tables[t.Name] = true
	return nil
}

// Upsert indexes a document, replacing any previous row with the same
// identifier. The row id survives replacement.
func (x *Index) Upsert(ctx context.Context, t *schema.PublicationType, doc *document.Document) (string, error) {
	if err := x.ensure(ctx, t); err != nil {
		return "", err
	}

	id, err := x.existingID(ctx, t, doc.Identifier)
	if err != nil {
		return "", err
	}
	if id == "" {
		id = uuid.New().String()
	}

	columns := []string{"id", "identifier"}
	placeholders := []string{"?", "?"}
	values := []any{id, doc.Identifier}

	for _, f := range t.GetFields() {
		value, _ := doc.Matter.Get(f.Name)
		columns = append(columns, quoteColumn(f.Name))
		placeholders = append(placeholders, "?")
		values = append(values, toColumn(value, f.Type))
	}

	insertSQL := fmt.Sprintf(
		"INSERT OR REPLACE INTO %s (%s) VALUES (%s)",
		tableName(t),
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)
	if _, err := x.db.ExecContext(ctx, insertSQL, values...); err != nil {
		return "", fmt.Errorf("index %s: %w", doc.Identifier, err)
	}
	return id, nil
}

// Remove drops a document from the index.
func (x *Index) Remove(ctx context.Context, t *schema.PublicationType, identifier string) error {
	if err := x.ensure(ctx, t); err != nil {
		return err
	}

	deleteSQL := fmt.Sprintf("DELETE FROM %s WHERE identifier = ?", tableName(t))
	result, err := x.db.ExecContext(ctx, deleteSQL, identifier)
	if err != nil {
		return fmt.Errorf("remove %s: %w", identifier, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("not indexed: %s", identifier)
	}
	return nil
}

// Rebuild replaces a type's rows with the given documents.
func (x *Index) Rebuild(ctx context.Context, t *schema.PublicationType, docs []*document.Document) error {
	if err := x.ensure(ctx, t); err != nil {
		return err
	}

	if _, err := x.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", tableName(t))); err != nil {
		return fmt.Errorf("clear index for %s: %w", t.Name, err)
	}
	for _, doc := range docs {
		if _, err := x.Upsert(ctx, t, doc); err != nil {
			return err
		}
	}
	return nil
}

// List returns one page of a type's publications, sorted by the type's
// sort field and direction. Page numbers start at 1. A type without
// pagination (pageSize 0) returns everything on page 1.
func (x *Index) List(ctx context.Context, t *schema.PublicationType, page int) (*Page, error) {
	if err := x.ensure(ctx, t); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}

	var total int64
	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM %s", tableName(t))
	if err := x.db.QueryRowContext(ctx, countSQL).Scan(&total); err != nil {
		return nil, fmt.Errorf("count %s: %w", t.Name, err)
	}

	columns := []string{"id", "identifier"}
	fields := t.GetFields()
	for _, f := range fields {
		columns = append(columns, quoteColumn(f.Name))
	}

	direction := "DESC"
	if t.SortAscending {
		direction = "ASC"
	}
	querySQL := fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY %s %s",
		strings.Join(columns, ", "), tableName(t), quoteColumn(t.SortField), direction,
	)

	size := t.PageSize
	if size > 0 {
		querySQL += fmt.Sprintf(" LIMIT %d OFFSET %d", size, (page-1)*size)
	}

	rows, err := x.db.QueryContext(ctx, querySQL)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.Name, err)
	}
	defer rows.Close()

	result := &Page{Total: total, Number: page, Size: size}
	for rows.Next() {
		values := make([]any, len(columns))
		scanDest := make([]any, len(columns))
		for i := range values {
			scanDest[i] = &values[i]
		}
		if err := rows.Scan(scanDest...); err != nil {
			return nil, err
		}

		rec := Record{Fields: make(map[string]any, len(fields))}
		rec.ID = asString(values[0])
		rec.Identifier = asString(values[1])
		for i, f := range fields {
			rec.Fields[f.Name] = fromColumn(values[i+2], f.Type)
		}
		result.Records = append(result.Records, rec)
	}
	return result, rows.Err()
}

// Count returns the number of indexed publications for a type.
func (x *Index) Count(ctx context.Context, t *schema.PublicationType) (int64, error) {
	if err := x.ensure(ctx, t); err != nil {
		return 0, err
	}
	var total int64
	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM %s", tableName(t))
	err := x.db.QueryRowContext(ctx, countSQL).Scan(&total)
	return total, err
}

// CheckHealth reports whether the underlying database is reachable.
func (x *Index) CheckHealth(ctx context.Context) error {
	return x.db.PingContext(ctx)
}

// Close closes the database connection.
func (x *Index) Close() error {
	return x.db.Close()
}

// DB returns the underlying database connection.
func (x *Index) DB() *sql.DB {
	return x.db
}

func (x *Index) ensure(ctx context.Context, t *schema.PublicationType) error {
	x.mu.RLock()
	ok := x.tables[t.Name]
	x.mu.RUnlock()
	if ok {
		return nil
	}
	return x.EnsureTable(ctx, t)
}

func (x *Index) existingID(ctx context.Context, t *schema.PublicationType, identifier string) (string, error) {
	var id string
	query := fmt.Sprintf("SELECT id FROM %s WHERE identifier = ?", tableName(t))
	err := x.db.QueryRowContext(ctx, query, identifier).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

// tableName derives the table for a type from its content directory.
// Directories are slugs, so replacing hyphens yields a safe identifier.
func tableName(t *schema.PublicationType) string {
	return "publications_" + strings.ReplaceAll(t.Directory(), "-", "_")
}

// quoteColumn quotes a field name for use as a column. Field names are
// normalized slugs and may contain hyphens.
func quoteColumn(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, ``) + `"`
}

// buildCreateTableSQL generates the per-type CREATE TABLE statement.
func buildCreateTableSQL(t *schema.PublicationType) string {
	columns := []string{
		"id TEXT PRIMARY KEY",
		"identifier TEXT NOT NULL UNIQUE",
	}
	for _, f := range t.GetFields() {
		columns = append(columns, quoteColumn(f.Name)+" "+sqlType(f.Type))
	}
	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n  %s\n)",
		tableName(t),
		strings.Join(columns, ",\n  "),
	)
}

// sqlType maps a field type to its column affinity.
func sqlType(ft schema.FieldType) string {
	switch ft {
	case schema.FieldTypeInteger:
		return "INTEGER"
	case schema.FieldTypeFloat:
		return "REAL"
	case schema.FieldTypeBoolean:
		return "INTEGER"
	default:
		return "TEXT"
	}
}

// toColumn converts a front matter value to its column representation.
// Lists are stored newline-joined; booleans as 0/1.
func toColumn(value any, ft schema.FieldType) any {
	if value == nil {
		return nil
	}
	switch ft {
	case schema.FieldTypeBoolean:
		switch v := value.(type) {
		case bool:
			if v {
				return 1
			}
			return 0
		case string:
			if v == "true" || v == "1" {
				return 1
			}
			return 0
		default:
			return 0
		}
	case schema.FieldTypeArray:
		switch v := value.(type) {
		case []string:
			return strings.Join(v, "\n")
		case []any:
			parts := make([]string, len(v))
			for i, item := range v {
				parts[i] = fmt.Sprintf("%v", item)
			}
			return strings.Join(parts, "\n")
		default:
			return fmt.Sprintf("%v", v)
		}
	default:
		return value
	}
}

// fromColumn converts a column value back to its front matter shape.
func fromColumn(value any, ft schema.FieldType) any {
	if value == nil {
		return nil
	}
	switch ft {
	case schema.FieldTypeBoolean:
		switch v := value.(type) {
		case int64:
			return v != 0
		case int:
			return v != 0
		default:
			return false
		}
	case schema.FieldTypeArray:
		return strings.Split(asString(value), "\n")
	case schema.FieldTypeInteger:
		if v, ok := value.(int64); ok {
			return int(v)
		}
		return value
	default:
		if b, ok := value.([]byte); ok {
			return string(b)
		}
		return value
	}
}

func asString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Package formatter provides a pluggable output formatting system for the
// CLI. Formatters convert record lists to table, json, or yaml output.
package formatter

import (
	"fmt"
	"io"
	"sort"
	"sync"
)

// Formatter converts structured records to a specific output format.
type Formatter interface {
	// Name returns the formatter name ("table", "json", "yaml").
	Name() string

	// Description returns a human-readable description.
	Description() string

	// FormatList formats a list of records with the given column order.
	FormatList(w io.Writer, columns []string, records []map[string]any, opts Options) error

	// FormatRecord formats a single record.
	FormatRecord(w io.Writer, columns []string, record map[string]any, opts Options) error

	// FormatError formats an error.
	FormatError(w io.Writer, err error) error
}

// Options configures formatting behavior.
type Options struct {
	// NoHeader disables the header row for tabular formats.
	NoHeader bool

	// Compact minimizes whitespace for json output.
	Compact bool

	// MaxWidth truncates long values in tables (0 = no limit).
	MaxWidth int
}

// Registry manages registered formatters.
type Registry struct {
	mu         sync.RWMutex
	formatters map[string]Formatter
	defaultFmt string
}

// NewRegistry creates an empty formatter registry.
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]Formatter),
		defaultFmt: "table",
	}
}

// Register adds a formatter to the registry.
func (r *Registry) Register(f Formatter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.formatters[f.Name()]; exists {
		return fmt.Errorf("formatter %q already registered", f.Name())
	}
	r.formatters[f.Name()] = f
	return nil
}

// Get returns a formatter by name.
func (r *Registry) Get(name string) (Formatter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.formatters[name]
	return f, ok
}

// Default returns the default formatter.
func (r *Registry) Default() Formatter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if f, ok := r.formatters[r.defaultFmt]; ok {
		return f
	}
	for _, f := range r.formatters {
		return f
	}
	return nil
}

// List returns all registered formatter names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the global formatter registry.
var DefaultRegistry = NewRegistry()

// Register adds a formatter to the default registry.
func Register(f Formatter) error {
	return DefaultRegistry.Register(f)
}

// Get returns a formatter from the default registry.
func Get(name string) (Formatter, bool) {
	return DefaultRegistry.Get(name)
}

// Default returns the default formatter from the default registry.
func Default() Formatter {
	return DefaultRegistry.Default()
}

// List returns all formatter names from the default registry.
func List() []string {
	return DefaultRegistry.List()
}

// filterRecord keeps only the requested columns. Empty columns keep the
// record as-is.
func filterRecord(record map[string]any, columns []string) map[string]any {
	if len(columns) == 0 {
		return record
	}
	result := make(map[string]any, len(columns))
	for _, col := range columns {
		if val, ok := record[col]; ok {
			result[col] = val
		}
	}
	return result
}

func filterRecords(records []map[string]any, columns []string) []map[string]any {
	if len(columns) == 0 {
		return records
	}
	result := make([]map[string]any, len(records))
	for i, record := range records {
		result[i] = filterRecord(record, columns)
	}
	return result
}

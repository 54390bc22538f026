// Package registry manages publication type registration and conflict
// detection. It ensures types don't claim conflicting names or content
// directories and provides lookup for the serving and seeding paths.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/artpar/pubforge/core/schema"
)

// Registry manages registered publication types and their directory claims.
type Registry struct {
	mu sync.RWMutex

	// types by name
	types map[string]*schema.PublicationType

	// content directories to type names
	directories map[string]string
}

// New creates a new registry.
func New() *Registry {
	return &Registry{
		types:       make(map[string]*schema.PublicationType),
		directories: make(map[string]string),
	}
}

// Register registers a publication type and claims its directory.
// Returns an error if any conflicts are detected.
func (r *Registry) Register(t *schema.PublicationType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := t.Validate(); err != nil {
		return err
	}

	if _, exists := r.types[t.Name]; exists {
		return &ConflictError{Conflicts: []Conflict{{
			Kind:     "name",
			Value:    t.Name,
			Existing: t.Name,
		}}}
	}

	dir := t.Directory()
	if owner, exists := r.directories[dir]; exists {
		return &ConflictError{Conflicts: []Conflict{{
			Kind:     "directory",
			Value:    dir,
			Existing: owner,
		}}}
	}

	r.types[t.Name] = t
	r.directories[dir] = t.Name
	return nil
}

// Unregister removes a publication type and releases its directory.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, exists := r.types[name]
	if !exists {
		return fmt.Errorf("publication type %q not registered", name)
	}

	delete(r.directories, t.Directory())
	delete(r.types, name)
	return nil
}

// Get returns a registered type by name.
func (r *Registry) Get(name string) (*schema.PublicationType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.types[name]
	return t, ok
}

// GetByDirectory returns the type that claims a content directory.
func (r *Registry) GetByDirectory(dir string) (*schema.PublicationType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name, ok := r.directories[dir]
	if !ok {
		return nil, false
	}
	return r.types[name], true
}

// List returns all registered types sorted by name.
func (r *Registry) List() []*schema.PublicationType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]*schema.PublicationType, 0, len(r.types))
	for _, t := range r.types {
		types = append(types, t)
	}

	sort.Slice(types, func(i, j int) bool {
		return types[i].Name < types[j].Name
	})

	return types
}

// Directories returns all claimed content directories, sorted.
func (r *Registry) Directories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dirs := make([]string, 0, len(r.directories))
	for d := range r.directories {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs
}

// Replace swaps the full type set atomically, used by hot reload.
// The incoming set is checked for internal conflicts before the swap;
// on error the registry is left unchanged.
func (r *Registry) Replace(types []*schema.PublicationType) error {
	next := New()
	for _, t := range types {
		if err := next.Register(t); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = next.types
	r.directories = next.directories
	return nil
}

// Conflict describes one registration clash.
type Conflict struct {
	// Kind is "name" or "directory".
	Kind string

	// Value is the contested name or directory.
	Value string

	// Existing names the type already holding the claim.
	Existing string
}

func (c Conflict) Error() string {
	return fmt.Sprintf("%s %q already claimed by type %q", c.Kind, c.Value, c.Existing)
}

// ConflictError represents one or more registration conflicts.
type ConflictError struct {
	Conflicts []Conflict
}

// Error returns the conflict error message.
func (e *ConflictError) Error() string {
	msgs := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		msgs[i] = c.Error()
	}
	return fmt.Sprintf("registration conflicts detected:\n  - %s", strings.Join(msgs, "\n  - "))
}

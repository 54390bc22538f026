// Package tags models the tag vocabulary: named groups of allowed string
// values referenced by tag-typed publication fields.
package tags

import "sort"

// Vocabulary is an ordered mapping from group name to member values.
// Group order is preserved from insertion and duplicate members collapse
// on merge. All mutations operate on the whole vocabulary in memory;
// persistence is a separate, whole-document concern.
type Vocabulary struct {
	order  []string
	groups map[string][]string
}

// New creates an empty vocabulary.
func New() *Vocabulary {
	return &Vocabulary{groups: make(map[string][]string)}
}

// FromMap builds a vocabulary from a plain map. Group order is sorted by
// name so that construction is deterministic.
func FromMap(m map[string][]string) *Vocabulary {
	v := New()
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v.AddGroup(name, m[name])
	}
	return v
}

// GroupNames returns all group names in vocabulary order.
func (v *Vocabulary) GroupNames() []string {
	out := make([]string, len(v.order))
	copy(out, v.order)
	return out
}

// ValuesFor returns the members of a group. An absent group yields an
// empty slice, never an error: callers probe groups defensively.
func (v *Vocabulary) ValuesFor(group string) []string {
	members := v.groups[group]
	out := make([]string, len(members))
	copy(out, members)
	return out
}

// Has reports whether a group exists.
func (v *Vocabulary) Has(group string) bool {
	_, ok := v.groups[group]
	return ok
}

// Len returns the number of groups.
func (v *Vocabulary) Len() int {
	return len(v.order)
}

// AddGroup sets a group's members, replacing any existing members.
// Duplicates are collapsed, keeping first occurrence order.
func (v *Vocabulary) AddGroup(name string, values []string) *Vocabulary {
	if _, exists := v.groups[name]; !exists {
		v.order = append(v.order, name)
	}
	v.groups[name] = dedupe(values)
	return v
}

// AddGroups sets several groups at once, in sorted name order.
func (v *Vocabulary) AddGroups(m map[string][]string) *Vocabulary {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v.AddGroup(name, m[name])
	}
	return v
}

// MergeIntoGroup appends values to a group, creating it when missing and
// collapsing duplicates.
func (v *Vocabulary) MergeIntoGroup(name string, values []string) *Vocabulary {
	existing := v.groups[name]
	merged := make([]string, 0, len(existing)+len(values))
	merged = append(merged, existing...)
	merged = append(merged, values...)
	return v.AddGroup(name, merged)
}

// Sorted returns a copy of the vocabulary with groups ordered by name.
func (v *Vocabulary) Sorted() *Vocabulary {
	names := v.GroupNames()
	sort.Strings(names)

	out := New()
	for _, name := range names {
		out.AddGroup(name, v.groups[name])
	}
	return out
}

// ToMap returns a plain map copy of the vocabulary.
func (v *Vocabulary) ToMap() map[string][]string {
	out := make(map[string][]string, len(v.groups))
	for name := range v.groups {
		out[name] = v.ValuesFor(name)
	}
	return out
}

// dedupe collapses duplicate members, preserving first occurrence order.
func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, val := range values {
		if !seen[val] {
			seen[val] = true
			out = append(out, val)
		}
	}
	return out
}

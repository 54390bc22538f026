// Package schema defines the core types for declarative publication types.
// A publication type declares the fields a publication carries, which field
// seeds its filename, and how its listing page is sorted and paginated.
package schema

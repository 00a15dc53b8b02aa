// Package model defines the core domain entities for the catalog service.
package model

import "time"

// Entity is implemented by every persisted catalog type.
// Repositories use it to assign identifiers and to enforce natural key uniqueness
// without knowing the concrete type.
type Entity[E any] interface {
	// EntityID returns the numeric identifier, zero when not yet persisted.
	EntityID() int64
	// WithID returns a copy of the entity carrying the given identifier.
	WithID(id int64) E
	// NaturalKey returns the business key used for uniqueness checks
	// (name for catalog entities, email for users).
	NaturalKey() string
	// Touch returns a copy with its timestamps set for a write at now.
	Touch(now time.Time) E
}

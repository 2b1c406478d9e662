package domain

import "time"

// AuditEntry is an append-only record of a mutating operation. Entries are
// never updated or deleted.
type AuditEntry struct {
	ID         string
	EntityType string
	EntityID   string
	Action     string
	ActorID    *string
	Metadata   map[string]any
	CreatedAt  time.Time
}

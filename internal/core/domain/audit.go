package domain

import "time"

// AuditAction names a catalog mutation recorded in the audit trail.
type AuditAction string

const (
	AuditBookCreated AuditAction = "book_created"
	AuditBookUpdated AuditAction = "book_updated"
	AuditBookDeleted AuditAction = "book_deleted"
)

// AuditEntry records a single catalog mutation. Entries are written
// asynchronously and are advisory: losing one is logged, never fatal.
type AuditEntry struct {
	ISBN      string      `json:"isbn"`
	Action    AuditAction `json:"action"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

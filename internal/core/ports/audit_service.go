package ports

import (
	"context"
	"time"

	"github.com/bookvault/bookstore-api/internal/core/domain"
)

// AuditEntryInput is the DTO handed from services to the audit pipeline.
type AuditEntryInput struct {
	ISBN      string
	Action    domain.AuditAction
	ActorID   string
	Timestamp time.Time
}

// AuditService persists a single audit entry.
type AuditService interface {
	Record(ctx context.Context, in AuditEntryInput) error
}

// AuditRecorder is the asynchronous enqueue side of the audit pipeline.
// Implementations must never block the caller beyond channel capacity.
type AuditRecorder interface {
	Enqueue(in AuditEntryInput)
}

// AuditQueryService reads back the audit trail.
type AuditQueryService interface {
	ListByISBN(ctx context.Context, isbn string, limit int) ([]domain.AuditEntry, error)
}

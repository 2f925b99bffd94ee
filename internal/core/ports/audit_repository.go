package ports

import (
	"context"

	"github.com/bookvault/bookstore-api/internal/core/domain"
)

// AuditRepository persists catalog audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
	ListByISBN(ctx context.Context, isbn string, limit int) ([]domain.AuditEntry, error)
}

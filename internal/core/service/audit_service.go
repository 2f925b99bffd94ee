package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bookvault/bookstore-api/internal/core/domain"
	"github.com/bookvault/bookstore-api/internal/core/ports"
)

// AuditService is the persistence stage of the audit pipeline. Record is
// called from dispatcher workers, already sharded by ISBN; ListByISBN backs
// the admin read endpoint.
type AuditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) *AuditService {
	return &AuditService{repo: repo, log: log}
}

func (s *AuditService) Record(ctx context.Context, in ports.AuditEntryInput) error {
	entry := &domain.AuditEntry{
		ISBN:      in.ISBN,
		Action:    in.Action,
		ActorID:   in.ActorID,
		Timestamp: in.Timestamp,
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}

	s.log.Debug().
		Str("isbn", in.ISBN).
		Str("action", string(in.Action)).
		Msg("audit entry recorded")
	return nil
}

// ListByISBN reads back the audit trail for one catalog entry.
func (s *AuditService) ListByISBN(ctx context.Context, isbn string, limit int) ([]domain.AuditEntry, error) {
	normalized, err := domain.NormalizeISBN(isbn)
	if err != nil {
		return nil, err
	}
	if limit < 1 || limit > maxPageSize {
		limit = maxPageSize
	}
	return s.repo.ListByISBN(ctx, normalized, limit)
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookvault/bookstore-api/internal/core/domain"
	"github.com/bookvault/bookstore-api/internal/core/ports"
)

const maxPageSize = 100

// BookService implements catalog use cases. All mutations run through the
// transaction guard; duplicate-ISBN pre-checks are an optimization for the
// common case, with the unique index settling concurrent writers.
type BookService struct {
	repo     ports.BookRepository
	guard    ports.TransactionGuard
	recorder ports.AuditRecorder // optional; nil disables the audit trail
	log      zerolog.Logger
}

func NewBookService(repo ports.BookRepository, guard ports.TransactionGuard, recorder ports.AuditRecorder, log zerolog.Logger) *BookService {
	return &BookService{repo: repo, guard: guard, recorder: recorder, log: log}
}

// Create adds a book to the catalog, recording the actor as owner.
func (s *BookService) Create(ctx context.Context, in ports.CreateBookInput) (*domain.Book, error) {
	isbn, err := domain.NormalizeISBN(in.ISBN)
	if err != nil {
		return nil, err
	}

	// Advisory pre-check for a clearer, faster conflict on the common case.
	if existing, err := s.repo.FindByISBN(ctx, isbn); err == nil && existing != nil {
		return nil, domain.ErrBookExists
	} else if err != nil && !errors.Is(err, domain.ErrBookNotFound) {
		s.log.Warn().Err(err).Str("isbn", isbn).Msg("isbn pre-check failed, deferring to unique index")
	}

	now := time.Now().UTC()
	book := &domain.Book{
		Title:         in.Title,
		Author:        in.Author,
		ISBN:          isbn,
		PublishedDate: in.PublishedDate,
		Description:   in.Description,
		CreatedBy:     in.ActorID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var created *domain.Book
	err = s.guard.Execute(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.repo.Insert(ctx, book)
		return err
	})
	if err != nil {
		if pe, ok := domain.AsPersistence(err); ok && pe.Kind == domain.KindDuplicate {
			return nil, domain.ErrBookExists
		}
		return nil, err
	}

	s.log.Info().Str("isbn", isbn).Str("actor", in.ActorID).Msg("book created")
	s.audit(domain.AuditBookCreated, isbn, in.ActorID)
	return created, nil
}

func (s *BookService) Get(ctx context.Context, id string) (*domain.Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *BookService) List(ctx context.Context, page, limit int) (*ports.ListBooksResult, error) {
	page, limit = clampPage(page, limit)
	items, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	return &ports.ListBooksResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// Update applies a partial update. Only the owner or an admin may update a
// book; legacy books with no recorded owner are admin-only.
func (s *BookService) Update(ctx context.Context, in ports.UpdateBookInput) (*domain.Book, error) {
	book, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.ActorRole != domain.RoleAdmin && book.CreatedBy != in.ActorID {
		return nil, domain.ErrForbidden
	}

	if in.Title != nil {
		book.Title = *in.Title
	}
	if in.Author != nil {
		book.Author = *in.Author
	}
	if in.Description != nil {
		book.Description = *in.Description
	}
	if in.PublishedDate != nil {
		book.PublishedDate = *in.PublishedDate
	}
	if in.ISBN != nil {
		isbn, err := domain.NormalizeISBN(*in.ISBN)
		if err != nil {
			return nil, err
		}
		if isbn != book.ISBN {
			if existing, err := s.repo.FindByISBN(ctx, isbn); err == nil && existing != nil {
				return nil, domain.ErrBookExists
			}
		}
		book.ISBN = isbn
	}
	book.UpdatedAt = time.Now().UTC()

	var updated *domain.Book
	err = s.guard.Execute(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.repo.Update(ctx, book)
		return err
	})
	if err != nil {
		if pe, ok := domain.AsPersistence(err); ok && pe.Kind == domain.KindDuplicate {
			return nil, domain.ErrBookExists
		}
		return nil, err
	}

	s.log.Info().Str("id", in.ID).Str("actor", in.ActorID).Msg("book updated")
	s.audit(domain.AuditBookUpdated, updated.ISBN, in.ActorID)
	return updated, nil
}

// Delete removes a book. The admin requirement is enforced by the routing
// layer; deleting a book that still has reviews fails with a referential
// classification.
func (s *BookService) Delete(ctx context.Context, id, actorID string) error {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.guard.Execute(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.log.Info().Str("id", id).Str("isbn", book.ISBN).Str("actor", actorID).Msg("book deleted")
	s.audit(domain.AuditBookDeleted, book.ISBN, actorID)
	return nil
}

func (s *BookService) audit(action domain.AuditAction, isbn, actorID string) {
	if s.recorder == nil {
		return
	}
	s.recorder.Enqueue(ports.AuditEntryInput{
		ISBN:      isbn,
		Action:    action,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
	})
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

package ports

import (
	"context"
	"time"

	"github.com/bookvault/bookstore-api/internal/core/domain"
)

// CreateBookInput carries all data needed to add a book to the catalog.
// ISBN is accepted in human-formatted form; the service normalizes it.
type CreateBookInput struct {
	Title         string
	Author        string
	ISBN          string
	PublishedDate time.Time
	Description   string
	// ActorID is the authenticated identity creating the book; recorded as owner.
	ActorID string
}

// UpdateBookInput carries a partial update. Nil fields are left unchanged.
type UpdateBookInput struct {
	ID            string
	Title         *string
	Author        *string
	ISBN          *string
	PublishedDate *time.Time
	Description   *string
	ActorID       string
	ActorRole     domain.Role
}

// ListBooksResult is returned by List.
type ListBooksResult struct {
	Items      []domain.Book
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// BookService defines use-case operations for the catalog.
type BookService interface {
	Create(ctx context.Context, in CreateBookInput) (*domain.Book, error)
	Get(ctx context.Context, id string) (*domain.Book, error)
	List(ctx context.Context, page, limit int) (*ListBooksResult, error)
	Update(ctx context.Context, in UpdateBookInput) (*domain.Book, error)
	Delete(ctx context.Context, id, actorID string) error
}

package ports

import (
	"context"

	"github.com/bookvault/bookstore-api/internal/core/domain"
)

// BookRepository defines the persistence contract for the catalog.
type BookRepository interface {
	Insert(ctx context.Context, book *domain.Book) (*domain.Book, error)
	FindByID(ctx context.Context, id string) (*domain.Book, error)
	// FindByISBN looks a book up by its normalized ISBN (the natural key).
	FindByISBN(ctx context.Context, isbn string) (*domain.Book, error)
	List(ctx context.Context, page, limit int) ([]domain.Book, int64, error)
	Update(ctx context.Context, book *domain.Book) (*domain.Book, error)
	// Delete removes a book. It returns domain.ErrBookReferenced when
	// dependent records (reviews) still point at the book.
	Delete(ctx context.Context, id string) error
}

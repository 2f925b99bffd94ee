package ports

import (
	"context"

	"github.com/bookvault/bookstore-api/internal/core/domain"
)

// UserRepository defines the persistence contract for user accounts.
// Implementations return raw store errors from writes; classification into
// the PersistenceError taxonomy happens in the transaction guard.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context, page, limit int) ([]domain.User, int64, error)
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
}

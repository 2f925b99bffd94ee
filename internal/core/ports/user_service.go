package ports

import (
	"context"

	"github.com/bookvault/bookstore-api/internal/core/domain"
)

// UpdateProfileInput carries a partial profile update for the calling user.
// Nil fields are left unchanged; Password is re-hashed before storage.
type UpdateProfileInput struct {
	Email    *string
	Password *string
}

// ListUsersResult is returned by List.
type ListUsersResult struct {
	Items      []domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserService defines account management operations. List and ChangeRole
// are admin-gated at the routing layer.
type UserService interface {
	Profile(ctx context.Context, identity string) (*domain.User, error)
	UpdateProfile(ctx context.Context, identity string, in UpdateProfileInput) (*domain.User, error)
	List(ctx context.Context, page, limit int) (*ListUsersResult, error)
	// ChangeRole updates a user's role. Demoting the only remaining admin
	// fails with domain.ErrLastAdmin.
	ChangeRole(ctx context.Context, userID string, role domain.Role) (*domain.User, error)
}

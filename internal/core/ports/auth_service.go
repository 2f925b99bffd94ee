package ports

import (
	"context"
	"time"

	"github.com/bookvault/bookstore-api/internal/core/domain"
)

// AuthService implements registration and login.
type AuthService interface {
	Register(ctx context.Context, email, password, role string) (*domain.User, error)
	Login(ctx context.Context, email, password string, now time.Time) (string, *domain.User, error)
}

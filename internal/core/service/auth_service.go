package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookvault/bookstore-api/internal/core/domain"
	"github.com/bookvault/bookstore-api/internal/core/ports"
)

// RateLimiter throttles repeated attempts keyed by identity.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// AuthService implements registration and login.
type AuthService struct {
	repo    ports.UserRepository
	guard   ports.TransactionGuard
	tokens  *TokenService
	limiter RateLimiter // optional; nil disables login throttling
	log     zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, guard ports.TransactionGuard, tokens *TokenService, limiter RateLimiter, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, guard: guard, tokens: tokens, limiter: limiter, log: log}
}

// Register creates a new account with a hashed credential. The email
// pre-check is advisory; the unique index on email settles races.
func (s *AuthService) Register(ctx context.Context, email, password, role string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	parsedRole, ok := domain.ParseRole(role)
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	if existing, err := s.repo.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, domain.ErrUserExists
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         parsedRole,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var created *domain.User
	err = s.guard.Execute(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.repo.Create(ctx, user)
		return err
	})
	if err != nil {
		if pe, ok := domain.AsPersistence(err); ok && pe.Kind == domain.KindDuplicate {
			return nil, domain.ErrUserExists
		}
		return nil, err
	}

	s.log.Info().Str("email", email).Str("role", role).Msg("user registered")
	return created, nil
}

// Login authenticates credentials at instant now and returns a signed
// access token carrying the user's role at issuance time.
func (s *AuthService) Login(ctx context.Context, email, password string, now time.Time) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Str("email", email).Msg("rate limit check failed, allowing attempt")
		} else if !allowed {
			return "", nil, domain.ErrRateLimited
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", nil, domain.ErrUserInactive
	}

	token, err := s.tokens.Issue(user.Email, user.Role, now)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("email", email).Msg("login succeeded")
	return token, user, nil
}

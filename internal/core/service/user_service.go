package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookvault/bookstore-api/internal/core/domain"
	"github.com/bookvault/bookstore-api/internal/core/ports"
)

// UserService implements profile and admin account management.
type UserService struct {
	repo  ports.UserRepository
	guard ports.TransactionGuard
	log   zerolog.Logger
}

func NewUserService(repo ports.UserRepository, guard ports.TransactionGuard, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, guard: guard, log: log}
}

// Profile looks the calling user up by the identity asserted in the token.
func (s *UserService) Profile(ctx context.Context, identity string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, identity)
}

// UpdateProfile applies a partial update to the calling user's account.
// An email change is pre-checked for uniqueness; the index is the authority.
func (s *UserService) UpdateProfile(ctx context.Context, identity string, in ports.UpdateProfileInput) (*domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, identity)
	if err != nil {
		return nil, err
	}

	if in.Email != nil && *in.Email != user.Email {
		if existing, err := s.repo.FindByEmail(ctx, *in.Email); err == nil && existing != nil {
			return nil, domain.ErrUserExists
		}
		user.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now().UTC()

	var updated *domain.User
	err = s.guard.Execute(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.repo.Update(ctx, user)
		return err
	})
	if err != nil {
		if pe, ok := domain.AsPersistence(err); ok && pe.Kind == domain.KindDuplicate {
			return nil, domain.ErrUserExists
		}
		return nil, err
	}

	s.log.Info().Str("identity", identity).Msg("profile updated")
	return updated, nil
}

func (s *UserService) List(ctx context.Context, page, limit int) (*ports.ListUsersResult, error) {
	page, limit = clampPage(page, limit)
	items, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	return &ports.ListUsersResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// ChangeRole promotes or demotes a user. The system must always retain at
// least one admin, so demoting the last one fails with ErrLastAdmin.
func (s *UserService) ChangeRole(ctx context.Context, userID string, role domain.Role) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	demotion := user.Role == domain.RoleAdmin && role != domain.RoleAdmin
	if demotion {
		// Advisory fast path; the guarded re-count below is the authority.
		admins, err := s.repo.CountByRole(ctx, domain.RoleAdmin)
		if err != nil {
			return nil, err
		}
		if admins <= 1 {
			return nil, domain.ErrLastAdmin
		}
	}

	user.Role = role
	user.UpdatedAt = time.Now().UTC()

	var updated *domain.User
	err = s.guard.Execute(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.repo.Update(ctx, user)
		if err != nil {
			return err
		}
		if !demotion {
			return nil
		}

		// Two concurrent demotions can both pass the pre-check before
		// either commits. Re-count after the write: if this demotion
		// removed the final admin, restore the role and fail. Inside a
		// session the transaction aborts anyway; without one the explicit
		// restore undoes the write.
		admins, err := s.repo.CountByRole(ctx, domain.RoleAdmin)
		if err != nil {
			return err
		}
		if admins < 1 {
			restored := *user
			restored.Role = domain.RoleAdmin
			if _, err := s.repo.Update(ctx, &restored); err != nil {
				return err
			}
			return domain.ErrLastAdmin
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrLastAdmin) {
			return nil, domain.ErrLastAdmin
		}
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Str("role", string(role)).Msg("role changed")
	return updated, nil
}

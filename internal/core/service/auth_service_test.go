package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookvault/bookstore-api/internal/core/domain"
)

// passthroughGuard runs the unit of work directly, the way the real guard
// behaves against a healthy store.
type passthroughGuard struct{}

func (passthroughGuard) Execute(ctx context.Context, op func(ctx context.Context) error) error {
	return op(ctx)
}

type stubUserRepo struct {
	users map[string]*domain.User // keyed by email
	// createErr, when set, is returned by Create regardless of state. Used
	// to simulate a concurrent writer winning the unique index.
	createErr error
	// beforeUpdate, when set, runs at the start of every Update. Used to
	// interleave a concurrent writer between a pre-check and the write.
	beforeUpdate func()
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, exists := r.users[user.Email]; exists {
		return nil, &domain.PersistenceError{Kind: domain.KindDuplicate, Err: domain.ErrUserExists}
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = "id-" + user.Email
	}
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.beforeUpdate != nil {
		r.beforeUpdate()
	}
	for email, u := range r.users {
		if u.ID == user.ID {
			if email != user.Email {
				if _, taken := r.users[user.Email]; taken {
					return nil, &domain.PersistenceError{Kind: domain.KindDuplicate, Err: domain.ErrUserExists}
				}
				delete(r.users, email)
			}
			r.users[user.Email] = cloneUser(user)
			return cloneUser(user), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, page, limit int) ([]domain.User, int64, error) {
	items := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		items = append(items, *u)
	}
	return items, int64(len(items)), nil
}

func (r *stubUserRepo) CountByRole(_ context.Context, role domain.Role) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type stubLimiter struct {
	allowed bool
	err     error
	calls   int
}

func (l *stubLimiter) Allow(_ context.Context, _ string) (bool, error) {
	l.calls++
	return l.allowed, l.err
}

func newAuthService(repo *stubUserRepo, limiter RateLimiter) *AuthService {
	tokens := NewTokenService("unit-test-secret", time.Hour)
	return NewAuthService(repo, passthroughGuard{}, tokens, limiter, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil)

	user, err := svc.Register(context.Background(), "alice@example.com", "pass1234", "standard")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil {
		t.Fatalf("expected user, got nil")
	}
	if user.PasswordHash == "pass1234" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass1234")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleStandard {
		t.Fatalf("unexpected role: %s", user.Role)
	}
	if !user.IsActive {
		t.Fatalf("new accounts should be active")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), nil)

	if _, err := svc.Register(context.Background(), "", "pass", "standard"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty email, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob@example.com", "", "standard"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob@example.com", "pass", "superuser"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown role, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil)

	if _, err := svc.Register(context.Background(), "bob@example.com", "pass1234", "standard"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob@example.com", "other", "standard"); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_DuplicateRace(t *testing.T) {
	// The pre-check misses but the unique index rejects the insert: the
	// classified duplicate must still surface as ErrUserExists.
	repo := newStubUserRepo()
	repo.createErr = &domain.PersistenceError{Kind: domain.KindDuplicate, Err: domain.ErrUserExists}
	svc := newAuthService(repo, nil)

	if _, err := svc.Register(context.Background(), "carol@example.com", "pass1234", "standard"); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if _, err := svc.Register(context.Background(), "carol@example.com", "s3cret99", "admin"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret99", now)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Email != "carol@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims, err := svc.tokens.Verify(token, now)
	if err != nil {
		t.Fatalf("issued token failed verification: %v", err)
	}
	if claims.Identity != "carol@example.com" || claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil)

	_, _ = svc.Register(context.Background(), "dave@example.com", "goodpass", "standard")
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass", time.Now().UTC()); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownAccount(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), nil)

	// An unknown account is indistinguishable from a wrong password.
	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass", time.Now().UTC()); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_Inactive(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil)

	if _, err := svc.Register(context.Background(), "eve@example.com", "pass1234", "standard"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	repo.users["eve@example.com"].IsActive = false

	if _, _, err := svc.Login(context.Background(), "eve@example.com", "pass1234", time.Now().UTC()); err != domain.ErrUserInactive {
		t.Fatalf("expected ErrUserInactive, got %v", err)
	}
}

func TestAuthService_Login_RateLimited(t *testing.T) {
	repo := newStubUserRepo()
	limiter := &stubLimiter{allowed: false}
	svc := newAuthService(repo, limiter)

	_, _ = svc.Register(context.Background(), "frank@example.com", "pass1234", "standard")
	if _, _, err := svc.Login(context.Background(), "frank@example.com", "pass1234", time.Now().UTC()); err != domain.ErrRateLimited {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if limiter.calls != 1 {
		t.Fatalf("expected one limiter call, got %d", limiter.calls)
	}
}

func TestAuthService_Login_LimiterFailureAllows(t *testing.T) {
	// A broken limiter must not lock everyone out.
	repo := newStubUserRepo()
	limiter := &stubLimiter{allowed: false, err: context.DeadlineExceeded}
	svc := newAuthService(repo, limiter)

	_, _ = svc.Register(context.Background(), "grace@example.com", "pass1234", "standard")
	if _, _, err := svc.Login(context.Background(), "grace@example.com", "pass1234", time.Now().UTC()); err != nil {
		t.Fatalf("expected login to proceed despite limiter failure, got %v", err)
	}
}

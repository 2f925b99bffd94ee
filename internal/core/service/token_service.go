package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bookvault/bookstore-api/internal/core/domain"
)

const defaultTokenTTL = 30 * time.Minute

// TokenClaims is the verified content of an access token.
type TokenClaims struct {
	Identity string
	Role     domain.Role
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, time-limited access tokens.
// Verification is stateless: validity is decided entirely by the signature
// and the embedded expiration, so there is no session store to consult.
// Secret and TTL are injected at construction, never read from a global.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue produces an HS256-signed token asserting identity and role, issued
// at now and expiring at now+TTL.
func (s *TokenService) Issue(identity string, role domain.Role, now time.Time) (string, error) {
	claims := tokenClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks token at instant now and returns its claims. Failures map
// to exactly one of domain.ErrTokenMalformed, domain.ErrTokenBadSignature,
// or domain.ErrTokenExpired. Any single-bit mutation of a token fails the
// signature check.
func (s *TokenService) Verify(token string, now time.Time) (TokenClaims, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return TokenClaims{}, domain.ErrTokenBadSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return TokenClaims{}, domain.ErrTokenExpired
		default:
			return TokenClaims{}, domain.ErrTokenMalformed
		}
	}
	if !parsed.Valid {
		return TokenClaims{}, domain.ErrTokenMalformed
	}

	role, ok := domain.ParseRole(claims.Role)
	if !ok || claims.Subject == "" {
		return TokenClaims{}, domain.ErrTokenMalformed
	}
	return TokenClaims{Identity: claims.Subject, Role: role}, nil
}

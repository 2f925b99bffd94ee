package service

import (
	"time"

	"github.com/bookvault/bookstore-api/internal/core/domain"
)

// Authorizer composes token verification with a required-role policy. It is
// a pure decision function: no I/O beyond what TokenService already does.
type Authorizer struct {
	tokens *TokenService
}

func NewAuthorizer(tokens *TokenService) *Authorizer {
	return &Authorizer{tokens: tokens}
}

// Authorize verifies token at instant now. Any token failure collapses to
// domain.ErrUnauthenticated. When required is non-nil, the verified role
// must equal it exactly; there is no role hierarchy, so an admin token does
// not satisfy a check that demands standard, nor the other way around.
func (a *Authorizer) Authorize(token string, now time.Time, required *domain.Role) (TokenClaims, error) {
	claims, err := a.tokens.Verify(token, now)
	if err != nil {
		return TokenClaims{}, domain.ErrUnauthenticated
	}
	if required != nil && claims.Role != *required {
		return TokenClaims{}, domain.ErrForbidden
	}
	return claims, nil
}

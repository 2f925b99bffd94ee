package domain

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrUserInactive = errors.New("user account is inactive")
var ErrBookNotFound = errors.New("book not found")
var ErrBookExists = errors.New("book already exists")
var ErrBookReferenced = errors.New("book is referenced by other records")
var ErrForbidden = errors.New("access forbidden")
var ErrUnauthenticated = errors.New("unauthenticated")
var ErrLastAdmin = errors.New("cannot demote the last admin")
var ErrRateLimited = errors.New("too many attempts")

// Token verification failures. Verify returns exactly one of these.
var (
	ErrTokenMalformed    = errors.New("token malformed")
	ErrTokenBadSignature = errors.New("token signature invalid")
	ErrTokenExpired      = errors.New("token expired")
)

// ISBN validation failures.
var (
	ErrISBNLength    = errors.New("isbn must be 10 or 13 characters after removing dashes and spaces")
	ErrISBNCharacter = errors.New("isbn must contain only digits (isbn-10 may end with X)")
)

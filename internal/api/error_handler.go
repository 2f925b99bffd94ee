package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bookvault/bookstore-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors and persistence classifications to their
//     HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Guarded writes carry a classification that maps deterministically.
	if pe, ok := domain.AsPersistence(err); ok {
		return resolvePersistence(pe, log, c)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, "user account is inactive"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, "too many attempts, retry later"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrBookNotFound):
		return http.StatusNotFound, "book not found"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, domain.ErrBookExists):
		return http.StatusConflict, "book with this isbn already exists"
	case errors.Is(err, domain.ErrBookReferenced):
		return http.StatusConflict, "book is referenced by other records"
	case errors.Is(err, domain.ErrLastAdmin):
		return http.StatusBadRequest, "cannot demote the last admin"
	case errors.Is(err, domain.ErrISBNLength), errors.Is(err, domain.ErrISBNCharacter):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrTokenMalformed),
		errors.Is(err, domain.ErrTokenBadSignature),
		errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, "invalid token"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

// resolvePersistence maps the write-failure taxonomy to HTTP outcomes.
// Client-caused kinds get specific messages; unavailable is a transient
// infra failure the caller may retry after backoff; unknown stays generic.
func resolvePersistence(pe *domain.PersistenceError, log zerolog.Logger, c echo.Context) (int, string) {
	switch pe.Kind {
	case domain.KindDuplicate:
		return http.StatusConflict, "resource already exists"
	case domain.KindReferenced:
		return http.StatusConflict, "resource is referenced by other records"
	case domain.KindMalformedData:
		return http.StatusBadRequest, "invalid data format or value"
	case domain.KindUnavailable:
		return http.StatusServiceUnavailable, "storage temporarily unavailable, retry later"
	default:
		log.Error().
			Err(pe).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("unclassified persistence error")
		return http.StatusInternalServerError, "internal server error"
	}
}

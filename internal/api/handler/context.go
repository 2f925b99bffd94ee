package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookvault/bookstore-api/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: a present, parseable
// role proves the middleware ran on this route.
func ctxClaims(c echo.Context) (identity string, role domain.Role, err error) {
	roleStr, _ := c.Get("role").(string)
	role, ok := domain.ParseRole(roleStr)
	if !ok {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	identity, _ = c.Get("identity").(string)
	if identity == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "token missing identity")
	}

	return identity, role, nil
}

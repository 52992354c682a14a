package middleware // reusable HTTP middleware for the API

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/filmreel/video-rental/internal/utils"
)

// identityKey is the context key under which Auth stores the decoded
// token identity.
const identityKey = "identity"

// Auth returns an Echo middleware that validates the x-auth-token
// header and injects the decoded identity into the request context.
// The provided secret must match the one used when issuing tokens.
//
// A missing header means the caller never authenticated: 401. A header
// that fails to decode or verify is a malformed request: 400. Role
// checks are left to RequireAdmin further down the chain.
func Auth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimSpace(c.Request().Header.Get("x-auth-token"))
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "access denied, no token provided"})
			}
			id, err := utils.ParseAuthToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid token"})
			}
			c.Set(identityKey, id)
			return next(c)
		}
	}
}

// RequireAdmin aborts with 403 unless the decoded identity carries the
// admin flag. It assumes Auth ran earlier in the chain; a request with
// no identity at all is treated as forbidden.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := c.Get(identityKey).(utils.Identity)
			if !ok || !id.IsAdmin {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
			}
			return next(c)
		}
	}
}

// IdentityFrom extracts the authenticated identity stored by Auth.
// The second return is false when the request never passed Auth.
func IdentityFrom(c echo.Context) (utils.Identity, bool) {
	id, ok := c.Get(identityKey).(utils.Identity)
	return id, ok
}

package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	SessionCookieName = "admin_session"
	SessionActive     = "active"
)

// AdminMiddleware gates the admin surface behind the session flag cookie.
// This is a UI convenience gate, not a security boundary: the database's own
// rules must enforce real access control. Login lives on an external surface;
// this only checks that the flag is present.
type AdminMiddleware struct{}

func NewAdminMiddleware() *AdminMiddleware {
	return &AdminMiddleware{}
}

func (m *AdminMiddleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(SessionCookieName)
		if err != nil || cookie.Value != SessionActive {
			return echo.NewHTTPError(http.StatusUnauthorized, "Admin session required")
		}
		return next(c)
	}
}

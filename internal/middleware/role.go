package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mpfops/roster/internal/model"
	"github.com/mpfops/roster/internal/repository"
)

// RequireAdmin guards the admin-only pages. A logged-in non-admin is not
// treated as an attacker: the request is answered with a flash notice and a
// redirect to the dashboard rather than a hard 403, and the wrapped handler
// (and therefore the store) is never reached. It assumes LoadSession ran
// earlier in the chain.
func RequireAdmin(sessions *repository.SessionRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if role == model.RoleAdmin {
				return next(c)
			}
			if sid, ok := c.Get(CtxSessionID).(string); ok {
				_ = sessions.AddFlash(c.Request().Context(), sid, "Access denied.")
			}
			return c.Redirect(http.StatusSeeOther, "/")
		}
	}
}

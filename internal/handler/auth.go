package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mpfops/roster/internal/config"
	"github.com/mpfops/roster/internal/form"
	"github.com/mpfops/roster/internal/middleware"
	"github.com/mpfops/roster/internal/repository"
	"github.com/mpfops/roster/internal/utils"
)

// AuthHandler bundles dependencies for the login/logout pages.
type AuthHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Sessions *repository.SessionRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, s *repository.SessionRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Sessions: s}
}

// LoginPage renders the login form. Logged-in users are sent straight to
// the dashboard.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	if currentUsername(c) != "" {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.Render(http.StatusOK, "login", echo.Map{})
}

// Login validates credentials and opens a session. Any failure — missing
// fields, unknown username, wrong password — re-renders the form with the
// same generic notice so the page never confirms which usernames exist.
func (h *AuthHandler) Login(c echo.Context) error {
	f, errs := form.ParseLogin(c.FormValue("username"), c.FormValue("password"))
	if !errs.Ok() {
		return h.loginFailed(c, f.Username)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, f.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return h.loginFailed(c, f.Username)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "query failed")
	}
	if !utils.VerifyPassword(u.PasswordHash, f.Password) {
		return h.loginFailed(c, f.Username)
	}

	sid, err := h.Sessions.Create(ctx, repository.Session{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "open session failed")
	}
	signed, err := utils.SignSessionID(h.Cfg.SessionSecret, sid, h.Sessions.TTL())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "sign session failed")
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    signed,
		Path:     "/",
		Expires:  time.Now().Add(h.Sessions.TTL()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusSeeOther, "/")
}

// loginFailed re-renders the form with the attempted username and the one
// generic notice. The key is FormUsername, not Username: the latter marks a
// logged-in identity in the shared layout.
func (h *AuthHandler) loginFailed(c echo.Context, username string) error {
	return c.Render(http.StatusOK, "login", echo.Map{
		"Error":        "Invalid username or password",
		"FormUsername": username,
	})
}

// Logout drops the server-side session, clears the cookie and returns to
// the login page.
func (h *AuthHandler) Logout(c echo.Context) error {
	if sid, ok := c.Get(middleware.CtxSessionID).(string); ok {
		_ = h.Sessions.Delete(c.Request().Context(), sid)
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.Redirect(http.StatusSeeOther, "/login")
}

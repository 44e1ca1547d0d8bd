package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mpfops/roster/internal/repository"
	"github.com/mpfops/roster/internal/utils"
)

// Context keys set by LoadSession and consumed by handlers and the role
// middleware.
const (
	CtxSessionID = "session_id"
	CtxUserID    = "user_id"
	CtxUsername  = "username"
	CtxRole      = "role"
)

// CookieName is the browser cookie holding the signed session token.
const CookieName = "roster_session"

// LoadSession resolves the session cookie on every request and, when valid,
// stores the session ID, user id, username and role in the echo context.
// It never rejects a request itself: anonymous requests simply proceed
// without identity and RequireLogin decides what is protected.
func LoadSession(secret string, sessions *repository.SessionRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}
			// Signature check first: a tampered cookie never reaches Redis.
			sid, err := utils.ParseSessionID(secret, cookie.Value)
			if err != nil {
				return next(c)
			}
			sess, err := sessions.Get(c.Request().Context(), sid)
			if err != nil {
				// Expired or logged-out session: treat as anonymous.
				return next(c)
			}
			c.Set(CtxSessionID, sid)
			c.Set(CtxUserID, sess.UserID)
			c.Set(CtxUsername, sess.Username)
			c.Set(CtxRole, sess.Role)
			// Get slid the server-side TTL forward; the cookie must slide
			// with it or it expires at the original login time regardless.
			refreshCookie(c, secret, sid, sessions.TTL())
			return next(c)
		}
	}
}

// refreshCookie re-signs the session cookie so its expiry tracks the sliding
// server-side TTL. A signing failure leaves the previous cookie in place;
// the session itself is unaffected.
func refreshCookie(c echo.Context, secret, sid string, ttl time.Duration) {
	signed, err := utils.SignSessionID(secret, sid, ttl)
	if err != nil {
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// RequireLogin redirects anonymous requests to the login page.
func RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := c.Get(CtxUserID).(uint64); !ok {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return next(c)
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mpfops/roster/internal/model"
	"github.com/mpfops/roster/internal/utils"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(called *bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		*called = true
		return c.NoContent(http.StatusOK)
	}
}

func TestRequireLogin(t *testing.T) {
	t.Run("anonymous redirects to login", func(t *testing.T) {
		c, rec := newTestContext(t)
		var called bool
		if err := RequireLogin(okHandler(&called))(c); err != nil {
			t.Fatalf("middleware returned error: %v", err)
		}
		if called {
			t.Error("handler reached without a session")
		}
		if rec.Code != http.StatusSeeOther {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
		}
		if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
			t.Errorf("Location = %q, want /login", loc)
		}
	})

	t.Run("logged-in passes through", func(t *testing.T) {
		c, rec := newTestContext(t)
		c.Set(CtxUserID, uint64(7))
		var called bool
		if err := RequireLogin(okHandler(&called))(c); err != nil {
			t.Fatalf("middleware returned error: %v", err)
		}
		if !called {
			t.Error("handler not reached")
		}
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})
}

func TestRefreshCookie(t *testing.T) {
	const secret = "test-secret"
	sid, err := utils.NewSessionID()
	if err != nil {
		t.Fatalf("NewSessionID: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	refreshCookie(c, secret, sid, time.Hour)

	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == CookieName {
			cookie = ck
		}
	}
	if cookie == nil {
		t.Fatalf("no %s cookie set", CookieName)
	}
	if !cookie.HttpOnly {
		t.Error("cookie not HttpOnly")
	}
	if !cookie.Expires.After(time.Now().Add(30 * time.Minute)) {
		t.Errorf("cookie expiry %v did not slide forward", cookie.Expires)
	}
	got, err := utils.ParseSessionID(secret, cookie.Value)
	if err != nil {
		t.Fatalf("ParseSessionID: %v", err)
	}
	if got != sid {
		t.Errorf("cookie wraps sid %q, want %q", got, sid)
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Run("admin passes through", func(t *testing.T) {
		c, rec := newTestContext(t)
		c.Set(CtxUserID, uint64(1))
		c.Set(CtxRole, model.RoleAdmin)
		var called bool
		if err := RequireAdmin(nil)(okHandler(&called))(c); err != nil {
			t.Fatalf("middleware returned error: %v", err)
		}
		if !called {
			t.Error("handler not reached for admin")
		}
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("non-admin is redirected, not rejected", func(t *testing.T) {
		c, rec := newTestContext(t)
		c.Set(CtxUserID, uint64(2))
		c.Set(CtxRole, model.RoleUser)
		var called bool
		if err := RequireAdmin(nil)(okHandler(&called))(c); err != nil {
			t.Fatalf("middleware returned error: %v", err)
		}
		if called {
			t.Error("handler reached by non-admin")
		}
		if rec.Code != http.StatusSeeOther {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
		}
		if loc := rec.Header().Get(echo.HeaderLocation); loc != "/" {
			t.Errorf("Location = %q, want /", loc)
		}
	})
}

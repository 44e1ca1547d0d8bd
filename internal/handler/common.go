package handler // handler defines http handlers

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mpfops/roster/internal/middleware"
	"github.com/mpfops/roster/internal/model"
	"github.com/mpfops/roster/internal/queue"
	"github.com/mpfops/roster/internal/repository"
	queue_publisher "github.com/mpfops/roster/internal/service"
)

// dbTimeout bounds every per-request database call.
const dbTimeout = 5 * time.Second

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// currentUsername returns the logged-in username or "" for anonymous
// requests.
func currentUsername(c echo.Context) string {
	u, _ := c.Get(middleware.CtxUsername).(string)
	return u
}

// isAdmin reports whether the current session holds the admin role.
func isAdmin(c echo.Context) bool {
	role, _ := c.Get(middleware.CtxRole).(string)
	return role == model.RoleAdmin
}

// flash queues a one-shot notice on the current session, if any. Failures
// are swallowed: losing a notice must never fail the request.
func flash(c echo.Context, sessions *repository.SessionRepo, msg string) {
	if sid, ok := c.Get(middleware.CtxSessionID).(string); ok {
		_ = sessions.AddFlash(c.Request().Context(), sid, msg)
	}
}

// pageData assembles the fields every template expects (identity, pending
// flashes) and merges in the page-specific values.
func pageData(c echo.Context, sessions *repository.SessionRepo, extra echo.Map) echo.Map {
	data := echo.Map{
		"Username": currentUsername(c),
		"IsAdmin":  isAdmin(c),
		"Flashes":  []string{},
	}
	if sid, ok := c.Get(middleware.CtxSessionID).(string); ok {
		if msgs, err := sessions.PopFlashes(c.Request().Context(), sid); err == nil && len(msgs) > 0 {
			data["Flashes"] = msgs
		}
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

// publishChange emits a best-effort audit event for a successful mutation.
// The publisher logs its own failures; requests never depend on the broker.
func publishChange(c echo.Context, entity, action, subject string) {
	ev := queue.RosterChangedEvent{
		Entity:  entity,
		Action:  action,
		Actor:   currentUsername(c),
		Subject: subject,
		At:      time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishRosterChanged(ctx, ev)
	}()
}

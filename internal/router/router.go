// Package router defines how HTTP routes are registered for the application.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/mpfops/roster/internal/config"
	"github.com/mpfops/roster/internal/handler"
	"github.com/mpfops/roster/internal/middleware"
	"github.com/mpfops/roster/internal/repository"
)

// Handlers bundles every page handler the router wires up.
type Handlers struct {
	Auth      *handler.AuthHandler
	Dashboard *handler.DashboardHandler
	Users     *handler.UsersHandler
	Missions  *handler.MissionsHandler
	Assign    *handler.AssignHandler
	Export    *handler.ExportHandler
}

// Register wires all routes and their middleware onto the Echo instance.
// Session loading runs on everything; the login POST additionally passes the
// rate limiter; authenticated pages sit behind RequireLogin; mutating roster
// pages additionally require the admin role (soft failure: flash + redirect).
func Register(e *echo.Echo, h Handlers, sessions *repository.SessionRepo, cfg config.Config, rdb *redis.Client) {
	e.Use(middleware.LoadSession(cfg.SessionSecret, sessions))

	e.GET("/healthz", handler.Health)

	limiter := middleware.LoginRateLimit(config.LoadLoginRateConfig(), rdb)
	e.GET("/login", h.Auth.LoginPage)
	e.POST("/login", h.Auth.Login, limiter)
	e.GET("/logout", h.Auth.Logout)

	// Pages any authenticated user may see.
	authed := e.Group("", middleware.RequireLogin)
	authed.GET("/", h.Dashboard.Dashboard)
	authed.GET("/export_excel", h.Export.ExportExcel)

	// Admin-only management pages.
	admin := e.Group("", middleware.RequireLogin, middleware.RequireAdmin(sessions))
	admin.GET("/users", h.Users.UsersPage)
	admin.POST("/users", h.Users.CreateUser)
	admin.GET("/users/edit/:id", h.Users.EditUserPage)
	admin.POST("/users/edit/:id", h.Users.EditUser)
	admin.POST("/users/delete/:id", h.Users.DeleteUser)

	admin.GET("/missions", h.Missions.MissionsPage)
	admin.POST("/missions", h.Missions.CreateMission)
	admin.POST("/missions/delete/:id", h.Missions.DeleteMission)

	admin.GET("/assign", h.Assign.AssignPage)
	admin.POST("/assign", h.Assign.CreateAssignment)
	admin.GET("/oncall_assign", h.Assign.OnCallPage)
	admin.POST("/oncall_assign", h.Assign.CreateOnCall)
	admin.POST("/assignments/delete/:id", h.Assign.DeleteAssignment)
	admin.POST("/oncall/delete/:id", h.Assign.DeleteOnCall)
}

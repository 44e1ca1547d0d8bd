package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mpfops/roster/internal/config"
	"github.com/mpfops/roster/internal/form"
	"github.com/mpfops/roster/internal/repository"
)

// UsersHandler implements the admin user management pages.
type UsersHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Sessions *repository.SessionRepo
}

func NewUsersHandler(cfg config.Config, u *repository.UserRepo, s *repository.SessionRepo) *UsersHandler {
	return &UsersHandler{Cfg: cfg, Users: u, Sessions: s}
}

// UsersPage handles GET /users: the user list plus a creation form.
func (h *UsersHandler) UsersPage(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	users, err := h.Users.List(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "load users failed")
	}
	return c.Render(http.StatusOK, "users", pageData(c, h.Sessions, echo.Map{
		"UserList": users,
	}))
}

// CreateUser handles POST /users. Validation failures re-render the page
// with the entered values; a duplicate username surfaces the same way.
func (h *UsersHandler) CreateUser(c echo.Context) error {
	f, errs := form.ParseNewUser(c.FormValue("username"), c.FormValue("password"), c.FormValue("role"))

	ctx, cancel := reqCtx(c)
	defer cancel()

	if errs.Ok() {
		_, err := h.Users.Create(ctx, f.Username, f.Password, f.Role, h.Cfg.BcryptCost)
		switch {
		case err == nil:
			flash(c, h.Sessions, "User added.")
			publishChange(c, "user", "created", f.Username)
			return c.Redirect(http.StatusSeeOther, "/users")
		case errors.Is(err, repository.ErrDuplicateUsername):
			errs = form.Errors{{Field: "username", Message: "User already exists."}}
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "create user failed")
		}
	}

	users, err := h.Users.List(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "load users failed")
	}
	return c.Render(http.StatusOK, "users", pageData(c, h.Sessions, echo.Map{
		"UserList": users,
		"Errors":   errs.Messages(),
		"Form":     f,
	}))
}

// EditUserPage handles GET /users/edit/:id.
func (h *UsersHandler) EditUserPage(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		flash(c, h.Sessions, "User not found.")
		return c.Redirect(http.StatusSeeOther, "/users")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			flash(c, h.Sessions, "User not found.")
			return c.Redirect(http.StatusSeeOther, "/users")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "load user failed")
	}
	return c.Render(http.StatusOK, "edit_user", pageData(c, h.Sessions, echo.Map{
		"User": u,
	}))
}

// EditUser handles POST /users/edit/:id. Username and role always apply;
// the password is replaced only when a new one is supplied.
func (h *UsersHandler) EditUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		flash(c, h.Sessions, "User not found.")
		return c.Redirect(http.StatusSeeOther, "/users")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			flash(c, h.Sessions, "User not found.")
			return c.Redirect(http.StatusSeeOther, "/users")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "load user failed")
	}

	f, errs := form.ParseEditUser(c.FormValue("username"), c.FormValue("role"), c.FormValue("password"))
	if errs.Ok() {
		err := h.Users.Update(ctx, id, f.Username, f.Role, f.Password, h.Cfg.BcryptCost)
		switch {
		case err == nil:
			flash(c, h.Sessions, "User updated.")
			publishChange(c, "user", "updated", f.Username)
			return c.Redirect(http.StatusSeeOther, "/users")
		case errors.Is(err, repository.ErrDuplicateUsername):
			errs = form.Errors{{Field: "username", Message: "User already exists."}}
		case errors.Is(err, repository.ErrNotFound):
			flash(c, h.Sessions, "User not found.")
			return c.Redirect(http.StatusSeeOther, "/users")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "update user failed")
		}
	}

	return c.Render(http.StatusOK, "edit_user", pageData(c, h.Sessions, echo.Map{
		"User":   u,
		"Errors": errs.Messages(),
		"Form":   f,
	}))
}

// DeleteUser handles POST /users/delete/:id. The default admin is protected
// at the repository level, so the block holds no matter who calls.
func (h *UsersHandler) DeleteUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		flash(c, h.Sessions, "User not found.")
		return c.Redirect(http.StatusSeeOther, "/users")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, getErr := h.Users.GetByID(ctx, id)
	switch err := h.Users.Delete(ctx, id); {
	case err == nil:
		flash(c, h.Sessions, "User deleted.")
		if getErr == nil {
			publishChange(c, "user", "deleted", u.Username)
		}
	case errors.Is(err, repository.ErrProtectedUser):
		flash(c, h.Sessions, "Cannot delete default admin.")
	case errors.Is(err, repository.ErrNotFound):
		flash(c, h.Sessions, "User not found.")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "delete user failed")
	}
	return c.Redirect(http.StatusSeeOther, "/users")
}

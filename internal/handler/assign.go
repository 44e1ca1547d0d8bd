package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mpfops/roster/internal/form"
	"github.com/mpfops/roster/internal/model"
	"github.com/mpfops/roster/internal/repository"
)

// AssignHandler implements the assignment and on-call assignment forms.
// Both flows share the same template and validation; only the target table
// and wording differ.
type AssignHandler struct {
	Users       *repository.UserRepo
	Missions    *repository.MissionRepo
	Assignments *repository.AssignmentRepo
	OnCalls     *repository.AssignmentRepo
	Sessions    *repository.SessionRepo
}

func NewAssignHandler(u *repository.UserRepo, m *repository.MissionRepo, a, oc *repository.AssignmentRepo, s *repository.SessionRepo) *AssignHandler {
	return &AssignHandler{Users: u, Missions: m, Assignments: a, OnCalls: oc, Sessions: s}
}

// AssignPage handles GET /assign.
func (h *AssignHandler) AssignPage(c echo.Context) error {
	return h.renderAssign(c, "Assign Mission", "/assign", nil, form.Assignment{})
}

// OnCallPage handles GET /oncall_assign.
func (h *AssignHandler) OnCallPage(c echo.Context) error {
	return h.renderAssign(c, "Assign On-Call", "/oncall_assign", nil, form.Assignment{})
}

// CreateAssignment handles POST /assign.
func (h *AssignHandler) CreateAssignment(c echo.Context) error {
	return h.create(c, h.Assignments, "assignment", "Assignment created.",
		"Assignment already exists.", "Assign Mission", "/assign")
}

// CreateOnCall handles POST /oncall_assign.
func (h *AssignHandler) CreateOnCall(c echo.Context) error {
	return h.create(c, h.OnCalls, "on_call_assignment", "On-call assignment created.",
		"On-call assignment already exists.", "Assign On-Call", "/oncall_assign")
}

func (h *AssignHandler) create(c echo.Context, repo *repository.AssignmentRepo, entity, okMsg, dupMsg, title, action string) error {
	f, errs := form.ParseAssignment(c.FormValue("user_id"), c.FormValue("mission_id"), c.FormValue("date"))

	ctx, cancel := reqCtx(c)
	defer cancel()

	if errs.Ok() {
		_, err := repo.Create(ctx, f.UserID, f.MissionID, f.Date)
		switch {
		case err == nil:
			flash(c, h.Sessions, okMsg)
			publishChange(c, entity, "created",
				fmt.Sprintf("user %d -> mission %d @ %s", f.UserID, f.MissionID, f.Date.Format(model.DateKey)))
			return c.Redirect(http.StatusSeeOther, "/")
		case errors.Is(err, repository.ErrDuplicateAssignment):
			errs = form.Errors{{Field: "date", Message: dupMsg}}
		case errors.Is(err, repository.ErrNotFound):
			errs = form.Errors{{Field: "user_id", Message: "Selected user or mission no longer exists."}}
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "create assignment failed")
		}
	}
	return h.renderAssign(c, title, action, errs.Messages(), f)
}

// DeleteAssignment handles POST /assignments/delete/:id.
func (h *AssignHandler) DeleteAssignment(c echo.Context) error {
	return h.delete(c, h.Assignments, "assignment", "Assignment deleted.")
}

// DeleteOnCall handles POST /oncall/delete/:id.
func (h *AssignHandler) DeleteOnCall(c echo.Context) error {
	return h.delete(c, h.OnCalls, "on_call_assignment", "On-call assignment deleted.")
}

func (h *AssignHandler) delete(c echo.Context, repo *repository.AssignmentRepo, entity, okMsg string) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		flash(c, h.Sessions, "Assignment not found.")
		return c.Redirect(http.StatusSeeOther, "/")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	switch err := repo.Delete(ctx, id); {
	case err == nil:
		flash(c, h.Sessions, okMsg)
		publishChange(c, entity, "deleted", fmt.Sprintf("id %d", id))
	case errors.Is(err, repository.ErrNotFound):
		flash(c, h.Sessions, "Assignment not found.")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "delete assignment failed")
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *AssignHandler) renderAssign(c echo.Context, title, action string, errMsgs []string, f form.Assignment) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "load users failed")
	}
	missions, err := h.Missions.List(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "load missions failed")
	}
	return c.Render(http.StatusOK, "assign", pageData(c, h.Sessions, echo.Map{
		"Title":    title,
		"Action":   action,
		"Users":    users,
		"Missions": missions,
		"Errors":   errMsgs,
		"Form":     f,
	}))
}

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mpfops/roster/internal/form"
	"github.com/mpfops/roster/internal/repository"
)

// MissionsHandler implements the admin mission management pages.
type MissionsHandler struct {
	Missions *repository.MissionRepo
	Sessions *repository.SessionRepo
}

func NewMissionsHandler(m *repository.MissionRepo, s *repository.SessionRepo) *MissionsHandler {
	return &MissionsHandler{Missions: m, Sessions: s}
}

// MissionsPage handles GET /missions: the mission list plus a creation form.
func (h *MissionsHandler) MissionsPage(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	missions, err := h.Missions.List(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "load missions failed")
	}
	return c.Render(http.StatusOK, "missions", pageData(c, h.Sessions, echo.Map{
		"MissionList": missions,
	}))
}

// CreateMission handles POST /missions.
func (h *MissionsHandler) CreateMission(c echo.Context) error {
	f, errs := form.ParseMission(c.FormValue("name"))

	ctx, cancel := reqCtx(c)
	defer cancel()

	if errs.Ok() {
		_, err := h.Missions.Create(ctx, f.Name)
		switch {
		case err == nil:
			flash(c, h.Sessions, "Mission added.")
			publishChange(c, "mission", "created", f.Name)
			return c.Redirect(http.StatusSeeOther, "/missions")
		case errors.Is(err, repository.ErrDuplicateMission):
			errs = form.Errors{{Field: "name", Message: "Mission already exists."}}
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "create mission failed")
		}
	}

	missions, err := h.Missions.List(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "load missions failed")
	}
	return c.Render(http.StatusOK, "missions", pageData(c, h.Sessions, echo.Map{
		"MissionList": missions,
		"Errors":      errs.Messages(),
		"Form":        f,
	}))
}

// DeleteMission handles POST /missions/delete/:id. Dependent assignment and
// on-call rows go with it via the foreign keys.
func (h *MissionsHandler) DeleteMission(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		flash(c, h.Sessions, "Mission not found.")
		return c.Redirect(http.StatusSeeOther, "/missions")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	m, getErr := h.Missions.GetByID(ctx, id)
	switch err := h.Missions.Delete(ctx, id); {
	case err == nil:
		flash(c, h.Sessions, "Mission deleted.")
		if getErr == nil {
			publishChange(c, "mission", "deleted", m.Name)
		}
	case errors.Is(err, repository.ErrNotFound):
		flash(c, h.Sessions, "Mission not found.")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "delete mission failed")
	}
	return c.Redirect(http.StatusSeeOther, "/missions")
}

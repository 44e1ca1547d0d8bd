package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mpfops/roster/internal/calendar"
	"github.com/mpfops/roster/internal/model"
	"github.com/mpfops/roster/internal/repository"
)

// DashboardHandler renders the month grid.
type DashboardHandler struct {
	Users       *repository.UserRepo
	Missions    *repository.MissionRepo
	Assignments *repository.AssignmentRepo
	OnCalls     *repository.AssignmentRepo
	Sessions    *repository.SessionRepo
}

func NewDashboardHandler(u *repository.UserRepo, m *repository.MissionRepo, a, oc *repository.AssignmentRepo, s *repository.SessionRepo) *DashboardHandler {
	return &DashboardHandler{Users: u, Missions: m, Assignments: a, OnCalls: oc, Sessions: s}
}

// Dashboard handles GET /. Query parameters: year and month default to the
// current date; user_id and mission_id optionally narrow the grid. The
// filters narrow which columns appear, not just which rows are shown: a
// mission filter leaves exactly that mission's column in the grid even when
// it has no assignments that month.
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	now := time.Now()
	year := queryInt(c, "year", now.Year())
	month := time.Month(queryInt(c, "month", int(now.Month())))
	if month < time.January || month > time.December {
		month = now.Month()
	}
	filterUser := queryID(c, "user_id")
	filterMission := queryID(c, "mission_id")

	ctx, cancel := reqCtx(c)
	defer cancel()

	allUsers, err := h.Users.List(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "load users failed")
	}
	allMissions, err := h.Missions.List(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "load missions failed")
	}

	missions := allMissions
	if filterMission != 0 {
		missions = filterMissions(allMissions, filterMission)
	}

	first, last := calendar.MonthBounds(year, month)
	assignments, err := h.Assignments.ListInRange(ctx, first, last, filterUser, filterMission)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "load assignments failed")
	}
	onCalls, err := h.OnCalls.ListInRange(ctx, first, last, filterUser, filterMission)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "load on-call assignments failed")
	}

	grid := calendar.BuildMonthGrid(year, month, missions, assignments, onCalls)

	return c.Render(http.StatusOK, "dashboard", pageData(c, h.Sessions, echo.Map{
		"Grid":          grid,
		"AllUsers":      allUsers,
		"AllMissions":   allMissions,
		"FilterUser":    filterUser,
		"FilterMission": filterMission,
	}))
}

func queryInt(c echo.Context, name string, def int) int {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// queryID parses an optional id filter. Anything that is not a positive
// integer, negative values included, means "no filter".
func queryID(c echo.Context, name string) uint64 {
	n := queryInt(c, name, 0)
	if n < 0 {
		return 0
	}
	return uint64(n)
}

func filterMissions(missions []model.Mission, id uint64) []model.Mission {
	out := make([]model.Mission, 0, 1)
	for _, m := range missions {
		if m.ID == id {
			out = append(out, m)
		}
	}
	return out
}

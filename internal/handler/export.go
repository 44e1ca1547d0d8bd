package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mpfops/roster/internal/calendar"
	"github.com/mpfops/roster/internal/export"
	"github.com/mpfops/roster/internal/repository"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler streams a month's duty records as a spreadsheet download.
type ExportHandler struct {
	Assignments *repository.AssignmentRepo
	OnCalls     *repository.AssignmentRepo
}

func NewExportHandler(a, oc *repository.AssignmentRepo) *ExportHandler {
	return &ExportHandler{Assignments: a, OnCalls: oc}
}

// ExportExcel handles GET /export_excel. Query parameters year and month
// default to the current date; the whole month is exported unfiltered.
func (h *ExportHandler) ExportExcel(c echo.Context) error {
	now := time.Now()
	year := queryInt(c, "year", now.Year())
	month := time.Month(queryInt(c, "month", int(now.Month())))
	if month < time.January || month > time.December {
		month = now.Month()
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	first, last := calendar.MonthBounds(year, month)
	assignments, err := h.Assignments.ListInRange(ctx, first, last, 0, 0)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "load assignments failed")
	}
	onCalls, err := h.OnCalls.ListInRange(ctx, first, last, 0, 0)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "load on-call assignments failed")
	}

	f, err := export.BuildMonthWorkbook(year, month, assignments, onCalls)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "build workbook failed")
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "write workbook failed")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%s", export.Filename(year, month)))
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

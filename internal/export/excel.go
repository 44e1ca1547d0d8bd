// Package export converts a month's duty records into a downloadable
// spreadsheet. The workbook layout mirrors what schedulers expect to mail
// around: one sheet per export named after the month, a fixed header and
// one row per duty record, regular assignments first.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mpfops/roster/internal/model"
)

// header is the fixed first row of every export.
var header = []string{"User", "Mission", "Date", "Type"}

const (
	typeAssigned = "Assigned"
	typeOnCall   = "On-Call"

	minColWidth = 12 // floor so short columns stay readable
	colPadding  = 2
)

// Filename returns the deterministic download name for a month export.
func Filename(year int, month time.Month) string {
	return fmt.Sprintf("mission_summary_%d_%02d.xlsx", year, int(month))
}

// SheetName returns the year-month sheet title, e.g. "2024-03".
func SheetName(year int, month time.Month) string {
	return fmt.Sprintf("%d-%02d", year, int(month))
}

// BuildMonthWorkbook renders the given rows into a single-sheet workbook.
// Row order is: header, every regular assignment in load order tagged
// "Assigned", then every on-call row tagged "On-Call". Column widths are
// sized to the longest value in each column plus padding, with a floor.
func BuildMonthWorkbook(year int, month time.Month, assignments, onCalls []model.AssignmentRow) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := SheetName(year, month)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	widths := make([]int, len(header))
	writeRow := func(rowIdx int, values []string) error {
		for col, v := range values {
			if len(v) > widths[col] {
				widths[col] = len(v)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return err
		}
		row := make([]interface{}, len(values))
		for i, v := range values {
			row[i] = v
		}
		return f.SetSheetRow(sheet, cell, &row)
	}

	if err := writeRow(1, header); err != nil {
		return nil, err
	}
	rowIdx := 2
	for _, a := range assignments {
		if err := writeRow(rowIdx, []string{a.Username, a.MissionName, a.Date.Format(model.DateKey), typeAssigned}); err != nil {
			return nil, err
		}
		rowIdx++
	}
	for _, oc := range onCalls {
		if err := writeRow(rowIdx, []string{oc.Username, oc.MissionName, oc.Date.Format(model.DateKey), typeOnCall}); err != nil {
			return nil, err
		}
		rowIdx++
	}

	for col := range header {
		w := widths[col] + colPadding
		if w < minColWidth {
			w = minColWidth
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, name, name, float64(w)); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Package calendar builds the monthly date × mission grid shown on the
// dashboard. Everything in here is a pure function over already-loaded
// rows: no I/O, no mutation of inputs, identical output for identical
// input, so handlers can call it as often as rendering requires.
package calendar

import (
	"time"

	"github.com/mpfops/roster/internal/model"
)

// MonthGrid is the aggregated view of one calendar month. Assigned and
// OnCall are keyed by date key (YYYY-MM-DD), then mission ID; each cell
// lists usernames in the order the rows were encountered. Summary maps
// username to mission name to the count of regular assignments (on-call
// duty is not counted).
type MonthGrid struct {
	Year     int
	Month    time.Month
	Dates    []time.Time
	Missions []model.Mission
	Assigned map[string]map[uint64][]string
	OnCall   map[string]map[uint64][]string
	Summary  map[string]map[string]int
}

// MonthDates returns every date of the given month in order, respecting the
// actual month length including leap years.
func MonthDates(year int, month time.Month) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	n := daysIn(year, month)
	dates := make([]time.Time, n)
	for i := 0; i < n; i++ {
		dates[i] = first.AddDate(0, 0, i)
	}
	return dates
}

// MonthBounds returns the first and last day of the month, both inclusive.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 0, daysIn(year, month)-1)
	return first, last
}

// daysIn computes the month length by normalizing day zero of the following
// month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateKey formats a date as the canonical grid key.
func DateKey(t time.Time) string { return t.Format(model.DateKey) }

// BuildMonthGrid assembles the month grid from pre-loaded rows. The mission
// slice defines which columns exist: every date holds an (initially empty)
// cell for each of these missions, and rows referencing any other mission
// are silently dropped. The summary is computed over all supplied regular
// assignment rows, matching the row-level filters the caller applied.
func BuildMonthGrid(year int, month time.Month, missions []model.Mission, assignments, onCalls []model.AssignmentRow) MonthGrid {
	dates := MonthDates(year, month)

	g := MonthGrid{
		Year:     year,
		Month:    month,
		Dates:    dates,
		Missions: missions,
		Assigned: make(map[string]map[uint64][]string, len(dates)),
		OnCall:   make(map[string]map[uint64][]string, len(dates)),
		Summary:  make(map[string]map[string]int),
	}

	missionSet := make(map[uint64]bool, len(missions))
	for _, m := range missions {
		missionSet[m.ID] = true
	}

	for _, d := range dates {
		k := DateKey(d)
		g.Assigned[k] = emptyCells(missions)
		g.OnCall[k] = emptyCells(missions)
	}

	fill(g.Assigned, missionSet, assignments)
	fill(g.OnCall, missionSet, onCalls)

	for _, a := range assignments {
		byMission := g.Summary[a.Username]
		if byMission == nil {
			byMission = make(map[string]int)
			g.Summary[a.Username] = byMission
		}
		byMission[a.MissionName]++
	}
	return g
}

func emptyCells(missions []model.Mission) map[uint64][]string {
	cells := make(map[uint64][]string, len(missions))
	for _, m := range missions {
		cells[m.ID] = []string{}
	}
	return cells
}

// fill appends usernames into their date/mission cell in encounter order.
// Rows outside the grid's date range or mission set are skipped.
func fill(grid map[string]map[uint64][]string, missionSet map[uint64]bool, rows []model.AssignmentRow) {
	for _, row := range rows {
		if !missionSet[row.MissionID] {
			continue
		}
		cells, ok := grid[DateKey(row.Date)]
		if !ok {
			continue
		}
		cells[row.MissionID] = append(cells[row.MissionID], row.Username)
	}
}

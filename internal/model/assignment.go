package model

import "time"

// Assignment is a (user, mission, date) duty record. The same shape backs
// both the assignments and on_call_assignments tables; the two are kept as
// separate tables because a user may hold a regular and an on-call duty for
// the same mission and date simultaneously.
type Assignment struct {
	ID        uint64    // id
	UserID    uint64    // user_id
	MissionID uint64    // mission_id
	Date      time.Time // duty_date (midnight UTC, no time component)
	CreatedAt time.Time // created_at
}

// AssignmentRow is an assignment joined with the referenced username and
// mission name. The calendar aggregator and the export consume these rows so
// rendering never issues per-row lookups.
type AssignmentRow struct {
	ID          uint64
	UserID      uint64
	MissionID   uint64
	Date        time.Time
	Username    string
	MissionName string
}

// DateKey is the canonical string form of an assignment date, used as the
// grid key and in exports.
const DateKey = "2006-01-02"

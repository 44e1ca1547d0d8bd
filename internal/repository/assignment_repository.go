package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/mpfops/roster/internal/model"
)

// AssignmentRepo provides CRUD over one of the two structurally identical
// duty tables. The table name is fixed at construction time so the same
// code path serves regular assignments and on-call assignments; only
// the two constructors below ever supply it, never request input.
type AssignmentRepo struct {
	db    *sql.DB
	table string
}

// NewAssignmentRepo returns a repository over the assignments table.
func NewAssignmentRepo(db *sql.DB) *AssignmentRepo {
	return &AssignmentRepo{db: db, table: "assignments"}
}

// NewOnCallRepo returns a repository over the on_call_assignments table.
func NewOnCallRepo(db *sql.DB) *AssignmentRepo {
	return &AssignmentRepo{db: db, table: "on_call_assignments"}
}

// Create inserts a (user, mission, date) record. The advisory pre-check
// keeps the common duplicate path cheap, but the unique key remains the
// authoritative guard: a losing racer still gets ErrDuplicateAssignment
// from the 1062 translation. A missing user or mission id surfaces as
// ErrNotFound via the foreign key.
func (r *AssignmentRepo) Create(ctx context.Context, userID, missionID uint64, date time.Time) (uint64, error) {
	var exists int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM "+r.table+" WHERE user_id=? AND mission_id=? AND duty_date=?",
		userID, missionID, date.Format(model.DateKey)).Scan(&exists)
	if err != nil {
		return 0, err
	}
	if exists > 0 {
		return 0, ErrDuplicateAssignment
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO "+r.table+" (user_id, mission_id, duty_date) VALUES (?,?,?)",
		userID, missionID, date.Format(model.DateKey))
	if err != nil {
		if isDuplicateErr(err) {
			return 0, ErrDuplicateAssignment
		}
		if isFKErr(err) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListInRange returns all rows whose date falls within [from, to] inclusive,
// joined with the referenced username and mission name so callers never
// issue per-row lookups. Zero userID/missionID mean "no filter"; non-zero
// values restrict the result to that user or mission. Rows come back in
// insertion order (by id) so grid cells preserve encounter order.
func (r *AssignmentRepo) ListInRange(ctx context.Context, from, to time.Time, userID, missionID uint64) ([]model.AssignmentRow, error) {
	q := `SELECT a.id, a.user_id, a.mission_id, a.duty_date, u.username, m.name
	      FROM ` + r.table + ` a
	      JOIN users u ON u.id = a.user_id
	      JOIN missions m ON m.id = a.mission_id
	      WHERE a.duty_date >= ? AND a.duty_date <= ?`
	args := []interface{}{from.Format(model.DateKey), to.Format(model.DateKey)}
	if userID != 0 {
		q += " AND a.user_id = ?"
		args = append(args, userID)
	}
	if missionID != 0 {
		q += " AND a.mission_id = ?"
		args = append(args, missionID)
	}
	q += " ORDER BY a.id"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.AssignmentRow, 0)
	for rows.Next() {
		var a model.AssignmentRow
		if err := rows.Scan(&a.ID, &a.UserID, &a.MissionID, &a.Date, &a.Username, &a.MissionName); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Delete removes a single duty record by id.
func (r *AssignmentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM "+r.table+" WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

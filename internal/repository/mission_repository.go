package repository

import (
	"context"
	"database/sql"

	"github.com/mpfops/roster/internal/model"
)

type MissionRepo struct{ DB *sql.DB }

func NewMissionRepo(db *sql.DB) *MissionRepo { return &MissionRepo{DB: db} }

// Create inserts a mission and returns its ID. A duplicate name surfaces as
// ErrDuplicateMission.
func (r *MissionRepo) Create(ctx context.Context, name string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx, "INSERT INTO missions (name) VALUES (?)", name)
	if err != nil {
		if isDuplicateErr(err) {
			return 0, ErrDuplicateMission
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a mission by id.
func (r *MissionRepo) GetByID(ctx context.Context, id uint64) (model.Mission, error) {
	var m model.Mission
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,created_at FROM missions WHERE id=? LIMIT 1",
		id).Scan(&m.ID, &m.Name, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return m, ErrNotFound
	}
	return m, err
}

// List returns all missions ordered by name.
func (r *MissionRepo) List(ctx context.Context) ([]model.Mission, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,created_at FROM missions ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	missions := make([]model.Mission, 0)
	for rows.Next() {
		var m model.Mission
		if err := rows.Scan(&m.ID, &m.Name, &m.CreatedAt); err != nil {
			return nil, err
		}
		missions = append(missions, m)
	}
	return missions, rows.Err()
}

// Delete removes a mission and, through the foreign keys, every assignment
// and on-call row referencing it.
func (r *MissionRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM missions WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

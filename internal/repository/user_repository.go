package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/mpfops/roster/internal/model"
	"github.com/mpfops/roster/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with a freshly hashed password and returns its ID.
// A unique-key violation on the username surfaces as ErrDuplicateUsername.
func (r *UserRepo) Create(ctx context.Context, username, password, role string, cost int) (uint64, error) {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, role) VALUES (?,?,?)",
		username, hash, role)
	if err != nil {
		if isDuplicateErr(err) {
			return 0, ErrDuplicateUsername
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by exact username match.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,password_hash,role,created_at,updated_at FROM users WHERE username=? LIMIT 1",
		username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return u, ErrNotFound
	}
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,password_hash,role,created_at,updated_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return u, ErrNotFound
	}
	return u, err
}

// List returns all users ordered by username.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,username,password_hash,role,created_at,updated_at FROM users ORDER BY username")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update applies a new username and role unconditionally. The password is
// re-hashed and stored only when newPassword is non-empty; otherwise the
// stored hash is left untouched.
func (r *UserRepo) Update(ctx context.Context, id uint64, username, role, newPassword string, cost int) error {
	var res sql.Result
	var err error
	if newPassword != "" {
		var hash string
		hash, err = utils.HashPassword(newPassword, cost)
		if err != nil {
			return err
		}
		res, err = r.DB.ExecContext(ctx,
			"UPDATE users SET username=?, role=?, password_hash=? WHERE id=?",
			username, role, hash, id)
	} else {
		res, err = r.DB.ExecContext(ctx,
			"UPDATE users SET username=?, role=? WHERE id=?",
			username, role, id)
	}
	if err != nil {
		if isDuplicateErr(err) {
			return ErrDuplicateUsername
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Either the id does not exist or nothing changed; distinguish them.
		var exists int
		if err := r.DB.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM users WHERE id=?", id).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return ErrNotFound
		}
	}
	return nil
}

// Delete removes a user and, through the foreign keys, every assignment and
// on-call row referencing it. The user named "admin" is protected and can
// never be deleted, regardless of who asks.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	var username string
	err := r.DB.QueryRowContext(ctx,
		"SELECT username FROM users WHERE id=? LIMIT 1", id).Scan(&username)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if username == "admin" {
		return ErrProtectedUser
	}
	_, err = r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	return err
}

// isDuplicateErr reports whether err is a MySQL unique-key violation (1062).
func isDuplicateErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

// isFKErr reports whether err is a MySQL foreign-key failure (1452), i.e. a
// referenced user or mission id does not exist.
func isFKErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1452")
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newAssignmentRepo(t *testing.T, ctor func(db *sql.DB) *AssignmentRepo) (*AssignmentRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return ctor(db), mock
}

func TestAssignmentRepoCreate(t *testing.T) {
	duty := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	countQ := regexp.QuoteMeta(
		"SELECT COUNT(*) FROM assignments WHERE user_id=? AND mission_id=? AND duty_date=?")
	insertQ := regexp.QuoteMeta(
		"INSERT INTO assignments (user_id, mission_id, duty_date) VALUES (?,?,?)")

	t.Run("success", func(t *testing.T) {
		repo, mock := newAssignmentRepo(t, NewAssignmentRepo)
		mock.ExpectQuery(countQ).
			WithArgs(int64(1), int64(2), "2024-03-15").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec(insertQ).
			WithArgs(int64(1), int64(2), "2024-03-15").
			WillReturnResult(sqlmock.NewResult(7, 1))

		id, err := repo.Create(context.Background(), 1, 2, duty)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if id != 7 {
			t.Errorf("id = %d, want 7", id)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})

	t.Run("existing triple stops before the insert", func(t *testing.T) {
		repo, mock := newAssignmentRepo(t, NewAssignmentRepo)
		mock.ExpectQuery(countQ).
			WithArgs(int64(1), int64(2), "2024-03-15").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		if _, err := repo.Create(context.Background(), 1, 2, duty); !errors.Is(err, ErrDuplicateAssignment) {
			t.Fatalf("err = %v, want ErrDuplicateAssignment", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})

	t.Run("losing racer gets the duplicate from the unique key", func(t *testing.T) {
		repo, mock := newAssignmentRepo(t, NewAssignmentRepo)
		mock.ExpectQuery(countQ).
			WithArgs(int64(1), int64(2), "2024-03-15").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec(insertQ).
			WithArgs(int64(1), int64(2), "2024-03-15").
			WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '1-2-2024-03-15' for key 'assignments.uq_assignments_slot'"))

		if _, err := repo.Create(context.Background(), 1, 2, duty); !errors.Is(err, ErrDuplicateAssignment) {
			t.Fatalf("err = %v, want ErrDuplicateAssignment", err)
		}
	})

	t.Run("missing user or mission surfaces as not found", func(t *testing.T) {
		repo, mock := newAssignmentRepo(t, NewAssignmentRepo)
		mock.ExpectQuery(countQ).
			WithArgs(int64(1), int64(99), "2024-03-15").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec(insertQ).
			WithArgs(int64(1), int64(99), "2024-03-15").
			WillReturnError(errors.New("Error 1452 (23000): Cannot add or update a child row: a foreign key constraint fails"))

		if _, err := repo.Create(context.Background(), 1, 99, duty); !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("on-call repo targets its own table", func(t *testing.T) {
		repo, mock := newAssignmentRepo(t, NewOnCallRepo)
		mock.ExpectQuery(regexp.QuoteMeta(
			"SELECT COUNT(*) FROM on_call_assignments WHERE user_id=? AND mission_id=? AND duty_date=?")).
			WithArgs(int64(1), int64(2), "2024-03-15").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec(regexp.QuoteMeta(
			"INSERT INTO on_call_assignments (user_id, mission_id, duty_date) VALUES (?,?,?)")).
			WithArgs(int64(1), int64(2), "2024-03-15").
			WillReturnResult(sqlmock.NewResult(3, 1))

		if _, err := repo.Create(context.Background(), 1, 2, duty); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})
}

func TestAssignmentRepoDelete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		repo, mock := newAssignmentRepo(t, NewAssignmentRepo)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM assignments WHERE id=?")).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := repo.Delete(context.Background(), 5); err != nil {
			t.Fatalf("Delete: %v", err)
		}
	})

	t.Run("missing row", func(t *testing.T) {
		repo, mock := newAssignmentRepo(t, NewAssignmentRepo)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM assignments WHERE id=?")).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		if err := repo.Delete(context.Background(), 5); !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}

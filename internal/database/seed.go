package database

import (
	"context"
	"database/sql"
	"log"

	"github.com/mpfops/roster/internal/utils"
)

// seedMissions is the fixed default set created on an empty missions table.
var seedMissions = []string{"Mission A", "Mission B", "Mission C", "Mission D", "Mission E"}

// Seed performs the first-boot bootstrap: it guarantees a user named "admin"
// with the admin role exists (created with adminPassword when missing) and
// seeds the default missions when the missions table is empty. It is safe to
// run on every startup.
func Seed(ctx context.Context, db *sql.DB, adminPassword string, bcryptCost int) error {
	var n int
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username = 'admin'`).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		hash, err := utils.HashPassword(adminPassword, bcryptCost)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx,
			`INSERT INTO users (username, password_hash, role) VALUES ('admin', ?, 'admin')`,
			hash); err != nil {
			return err
		}
		log.Println("seed: created default admin user")
	}

	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM missions`).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		for _, name := range seedMissions {
			if _, err := db.ExecContext(ctx,
				`INSERT INTO missions (name) VALUES (?)`, name); err != nil {
				return err
			}
		}
		log.Printf("seed: created %d default missions", len(seedMissions))
	}
	return nil
}

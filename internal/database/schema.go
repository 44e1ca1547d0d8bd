package database

import (
	"context"
	"database/sql"
)

// schema holds the DDL executed at startup. Uniqueness and referential
// integrity live here: usernames and mission names are unique, and the
// (user, mission, date) triple is unique per table. Deleting a user or a
// mission cascades to its assignment rows. The unique keys are the
// authoritative guard against duplicate-creation races; repository
// pre-checks are advisory only.
//
// username carries a binary collation: lookups and the unique key must be
// case-sensitive ("alice" and "Alice" are distinct accounts), which the
// utf8mb4 default collations would silently break.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		username      VARCHAR(150)    COLLATE utf8mb4_bin NOT NULL,
		password_hash VARCHAR(255)    NOT NULL,
		role          VARCHAR(50)     NOT NULL DEFAULT 'user',
		created_at    TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_username (username)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS missions (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name       VARCHAR(150)    NOT NULL,
		created_at TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_missions_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS assignments (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id    BIGINT UNSIGNED NOT NULL,
		mission_id BIGINT UNSIGNED NOT NULL,
		duty_date  DATE            NOT NULL,
		created_at TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_assignments_slot (user_id, mission_id, duty_date),
		KEY idx_assignments_date (duty_date),
		CONSTRAINT fk_assignments_user    FOREIGN KEY (user_id)    REFERENCES users (id)    ON DELETE CASCADE,
		CONSTRAINT fk_assignments_mission FOREIGN KEY (mission_id) REFERENCES missions (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS on_call_assignments (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id    BIGINT UNSIGNED NOT NULL,
		mission_id BIGINT UNSIGNED NOT NULL,
		duty_date  DATE            NOT NULL,
		created_at TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_on_call_slot (user_id, mission_id, duty_date),
		KEY idx_on_call_date (duty_date),
		CONSTRAINT fk_on_call_user    FOREIGN KEY (user_id)    REFERENCES users (id)    ON DELETE CASCADE,
		CONSTRAINT fk_on_call_mission FOREIGN KEY (mission_id) REFERENCES missions (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the roster tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

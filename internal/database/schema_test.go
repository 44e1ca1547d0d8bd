package database

import (
	"strings"
	"testing"
)

// Usernames are case-sensitive: "alice" and "Alice" are distinct accounts
// and a wrong-case username must not authenticate. MySQL's utf8mb4 default
// collations compare case-insensitively, so the column has to pin a binary
// collation or the unique key and WHERE username=? both go soft.
func TestUsernameCollationIsCaseSensitive(t *testing.T) {
	var usersDDL string
	for _, stmt := range schema {
		if strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS users") {
			usersDDL = stmt
			break
		}
	}
	if usersDDL == "" {
		t.Fatal("no users table in schema")
	}
	for _, line := range strings.Split(usersDDL, "\n") {
		if !strings.Contains(line, "username") || strings.Contains(line, "UNIQUE") {
			continue
		}
		if !strings.Contains(line, "COLLATE utf8mb4_bin") {
			t.Errorf("username column lacks a binary collation: %s", strings.TrimSpace(line))
		}
	}
}

func TestSchemaDeclaresUniqueKeys(t *testing.T) {
	joined := strings.Join(schema, "\n")
	for _, key := range []string{
		"uq_users_username",
		"uq_missions_name",
		"uq_assignments_slot",
		"uq_on_call_slot",
	} {
		if !strings.Contains(joined, key) {
			t.Errorf("schema missing unique key %s", key)
		}
	}
}

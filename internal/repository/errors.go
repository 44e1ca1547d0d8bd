// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios and surface each as the
// matching user-visible notice instead of a generic failure.
package repository

import "errors"

// ErrDuplicateUsername is returned when a user with the requested username
// already exists (case-sensitive exact match, enforced by the unique key).
var ErrDuplicateUsername = errors.New("username already exists")

// ErrDuplicateMission is returned when a mission with the requested name
// already exists.
var ErrDuplicateMission = errors.New("mission already exists")

// ErrDuplicateAssignment is returned when the exact (user, mission, date)
// triple already exists in the targeted table.
var ErrDuplicateAssignment = errors.New("assignment already exists")

// ErrProtectedUser is returned on any attempt to delete the user named
// "admin". The check is repository-level so it holds regardless of caller.
var ErrProtectedUser = errors.New("cannot delete default admin")

// ErrNotFound is returned when a referenced user or mission does not exist,
// either on direct lookup or via a foreign key failure on insert.
var ErrNotFound = errors.New("not found")

// Package form validates raw request input into typed values. Each Parse
// function returns the parsed form plus a list of field errors; rendering
// concerns stay out — handlers decide how to show the messages.
package form

import (
	"strconv"
	"strings"
	"time"

	"github.com/mpfops/roster/internal/model"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 150
	passwordMinLen = 4
	missionMaxLen  = 150
)

// FieldError names the offending field and a user-facing message.
type FieldError struct {
	Field   string
	Message string
}

// Errors collects field errors for one form submission. A nil/empty value
// means the form is valid.
type Errors []FieldError

func (e Errors) Ok() bool { return len(e) == 0 }

// Messages flattens the errors into display strings.
func (e Errors) Messages() []string {
	out := make([]string, 0, len(e))
	for _, fe := range e {
		out = append(out, fe.Message)
	}
	return out
}

func (e *Errors) add(field, msg string) { *e = append(*e, FieldError{Field: field, Message: msg}) }

// Login is a validated login submission.
type Login struct {
	Username string
	Password string
}

// ParseLogin checks that both credentials are present.
func ParseLogin(username, password string) (Login, Errors) {
	var errs Errors
	username = strings.TrimSpace(username)
	if username == "" {
		errs.add("username", "Username is required.")
	}
	if password == "" {
		errs.add("password", "Password is required.")
	}
	return Login{Username: username, Password: password}, errs
}

// NewUser is a validated user-creation submission.
type NewUser struct {
	Username string
	Password string
	Role     string
}

// ParseNewUser enforces username length, password length and a known role.
func ParseNewUser(username, password, role string) (NewUser, Errors) {
	var errs Errors
	username = strings.TrimSpace(username)
	if n := len(username); n < usernameMinLen || n > usernameMaxLen {
		errs.add("username", "Username must be between 3 and 150 characters.")
	}
	if len(password) < passwordMinLen {
		errs.add("password", "Password must be at least 4 characters.")
	}
	role = strings.TrimSpace(role)
	if role != model.RoleAdmin && role != model.RoleUser {
		errs.add("role", "Role must be admin or user.")
	}
	return NewUser{Username: username, Password: password, Role: role}, errs
}

// EditUser is a validated user-edit submission. Password is optional: empty
// means "keep the current one".
type EditUser struct {
	Username string
	Role     string
	Password string
}

// ParseEditUser applies the creation rules except that the password may be
// omitted entirely.
func ParseEditUser(username, role, password string) (EditUser, Errors) {
	var errs Errors
	username = strings.TrimSpace(username)
	if n := len(username); n < usernameMinLen || n > usernameMaxLen {
		errs.add("username", "Username must be between 3 and 150 characters.")
	}
	role = strings.TrimSpace(role)
	if role != model.RoleAdmin && role != model.RoleUser {
		errs.add("role", "Role must be admin or user.")
	}
	if password != "" && len(password) < passwordMinLen {
		errs.add("password", "Password must be at least 4 characters.")
	}
	return EditUser{Username: username, Role: role, Password: password}, errs
}

// Mission is a validated mission-creation submission.
type Mission struct {
	Name string
}

// ParseMission requires a non-empty name within the column limit.
func ParseMission(name string) (Mission, Errors) {
	var errs Errors
	name = strings.TrimSpace(name)
	if name == "" {
		errs.add("name", "Mission name is required.")
	} else if len(name) > missionMaxLen {
		errs.add("name", "Mission name must be at most 150 characters.")
	}
	return Mission{Name: name}, errs
}

// Assignment is a validated duty-assignment submission; it covers both the
// regular and on-call forms since they are structurally identical.
type Assignment struct {
	UserID    uint64
	MissionID uint64
	Date      time.Time
}

// ParseAssignment parses the selected user and mission ids and a
// YYYY-MM-DD date.
func ParseAssignment(userID, missionID, date string) (Assignment, Errors) {
	var errs Errors
	var a Assignment

	uid, err := strconv.ParseUint(strings.TrimSpace(userID), 10, 64)
	if err != nil || uid == 0 {
		errs.add("user_id", "A user must be selected.")
	}
	a.UserID = uid

	mid, err := strconv.ParseUint(strings.TrimSpace(missionID), 10, 64)
	if err != nil || mid == 0 {
		errs.add("mission_id", "A mission must be selected.")
	}
	a.MissionID = mid

	d, err := time.ParseInLocation(model.DateKey, strings.TrimSpace(date), time.UTC)
	if err != nil {
		errs.add("date", "Date must be in YYYY-MM-DD format.")
	}
	a.Date = d

	return a, errs
}

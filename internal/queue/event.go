// Package queue defines message payloads exchanged over the message broker.
package queue

// RosterChangedEvent is published after every successful roster mutation.
// It carries enough information for downstream consumers to build an audit
// trail without querying the primary database.
type RosterChangedEvent struct {
	Entity  string `json:"entity"`  // user | mission | assignment | on_call_assignment
	Action  string `json:"action"`  // created | updated | deleted
	Actor   string `json:"actor"`   // username of the admin performing the change
	Subject string `json:"subject"` // human-readable description of the affected record
	At      string `json:"at"`      // RFC3339 UTC timestamp
}

package model

import "time"

// Mission is a named duty station that users are assigned to.
type Mission struct {
	ID        uint64    // missions.id
	Name      string    // missions.name (unique)
	CreatedAt time.Time // missions.created_at
}

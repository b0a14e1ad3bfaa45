package models

import "time"

// GroupSchedule is the latest-wins grouping artifact of a season. Regeneration
// replaces the whole document; there is no incremental update path.
type GroupSchedule struct {
	ID           int       `json:"id" db:"id"`
	SeasonNumber int       `json:"season_number" db:"season_number"`
	Groups       []Group   `json:"groups" db:"-"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Group is a named (A, B, C…) subset of a season's approved teams.
type Group struct {
	GroupName string      `json:"group_name"`
	Teams     []GroupTeam `json:"teams"`
}

// GroupTeam carries the team reference plus denormalized display fields.
type GroupTeam struct {
	TeamID   int    `json:"team_id"`
	TeamName string `json:"team_name"`
	TeamCode string `json:"team_code"`
}

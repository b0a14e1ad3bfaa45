package models

import "time"

// TeamStatus представляет статусы заявки команды, соответствующие ENUM в БД.
type TeamStatus string

const (
	TeamStatusPending  TeamStatus = "pending"
	TeamStatusApproved TeamStatus = "approved"
	TeamStatusRejected TeamStatus = "rejected"
)

// Team belongs to exactly one season. Only approved teams take part in
// grouping and fixtures.
type Team struct {
	ID           int        `json:"id" db:"id"`
	SeasonNumber int        `json:"season_number" db:"season_number"`
	Name         string     `json:"name" db:"name"`
	ShortCode    string     `json:"short_code" db:"short_code"`
	Status       TeamStatus `json:"status" db:"status"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`

	Roster []RosterSlot `json:"roster,omitempty" db:"-"`
}

// RosterSlot is one ordered entry of a team roster. A slot may be bound to a
// verified user through their 4-character player code.
type RosterSlot struct {
	ID         int     `json:"id" db:"id"`
	TeamID     int     `json:"team_id" db:"team_id"`
	SlotNo     int     `json:"slot_no" db:"slot_no"`
	PlayerName string  `json:"player_name" db:"player_name"`
	PlayerCode *string `json:"player_code,omitempty" db:"player_code"`
}

package models

import "time"

// Season представляет один розыгрыш турнира.
type Season struct {
	ID                     int        `json:"id" db:"id"`
	SeasonNumber           int        `json:"season_number" db:"season_number"`
	EntryDeadline          time.Time  `json:"entry_deadline" db:"entry_deadline"`
	IsCurrent              bool       `json:"is_current" db:"is_current"`
	ScheduleGenerationTime *time.Time `json:"schedule_generation_time,omitempty" db:"schedule_generation_time"`
	CreatedAt              time.Time  `json:"created_at" db:"created_at"`

	// Groups is a denormalized copy of the latest group schedule, written
	// whenever groups are (re)generated. Stored as JSONB.
	Groups []Group `json:"groups,omitempty" db:"-"`

	// Participants is the deduplicated approved-team name list recorded by
	// the last fixture generation run.
	Participants []string `json:"participants,omitempty" db:"-"`

	// MatchIDs lists the matches created by the last fixture generation run.
	MatchIDs []int64 `json:"match_ids,omitempty" db:"-"`
}

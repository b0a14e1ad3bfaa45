package models

import "time"

// MatchStage представляет фазы турнира, соответствующие ENUM в БД.
type MatchStage string

const (
	StageLeague  MatchStage = "league"
	StagePlayoff MatchStage = "playoff"
	StageFinal   MatchStage = "final"
)

// MatchResultStatus is the lifecycle state of a match.
type MatchResultStatus string

const (
	ResultUpcoming  MatchResultStatus = "upcoming"
	ResultLive      MatchResultStatus = "live"
	ResultCompleted MatchResultStatus = "completed"
)

// Winner values a completed match may record. Anything else is normalized to
// a null winner.
const (
	WinnerTeamA    = "teamA"
	WinnerTeamB    = "teamB"
	WinnerTie      = "tie"
	WinnerDraw     = "draw"
	WinnerNoResult = "no_result"
)

// InningsScore holds one side's figures. Overs is kept as the display string
// "overs.balls" exactly as entered; it is parsed only when standings need the
// ball count.
type InningsScore struct {
	Runs    int    `json:"runs" db:"runs"`
	Wickets int    `json:"wickets" db:"wickets"`
	Overs   string `json:"overs" db:"overs"`
}

// Match is a fixture of a season. Team references are absent only on fixed
// bracket placeholders.
type Match struct {
	ID           int        `json:"id" db:"id"`
	SeasonNumber int        `json:"season_number" db:"season_number"`
	Stage        MatchStage `json:"stage" db:"stage"`
	GroupName    *string    `json:"group_name,omitempty" db:"group_name"`

	TeamAID   *int   `json:"team_a_id,omitempty" db:"team_a_id"`
	TeamBID   *int   `json:"team_b_id,omitempty" db:"team_b_id"`
	TeamAName string `json:"team_a_name" db:"team_a_name"`
	TeamBName string `json:"team_b_name" db:"team_b_name"`

	Venue     string            `json:"venue" db:"venue"`
	MatchTime time.Time         `json:"match_time" db:"match_time"`
	Result    MatchResultStatus `json:"result" db:"result"`

	TeamAScore InningsScore `json:"team_a_score" db:"-"`
	TeamBScore InningsScore `json:"team_b_score" db:"-"`

	Winner *string `json:"winner,omitempty" db:"winner"`
	Margin *string `json:"margin,omitempty" db:"margin"`

	// MatchNumber is sequential within a generation batch.
	MatchNumber int `json:"match_number" db:"match_number"`

	// Fixed marks bracket placeholders that must not be deleted ad hoc.
	Fixed bool `json:"fixed" db:"fixed"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

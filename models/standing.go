package models

// StandingRow is a derived points-table entry. It is never persisted: the
// table is recomputed from the current match set on every read.
type StandingRow struct {
	TeamID    int    `json:"team_id"`
	TeamName  string `json:"team_name"`
	TeamCode  string `json:"team_code"`
	GroupName string `json:"group_name"`

	Matches int `json:"matches"`
	Won     int `json:"won"`
	Lost    int `json:"lost"`
	Tied    int `json:"tied"`
	Points  int `json:"points"`

	// Form is the per-match result sequence ("W", "L", "T", "N"), oldest first.
	Form []string `json:"form"`

	RunsFor     int `json:"runs_for"`
	BallsFaced  int `json:"balls_faced"`
	RunsAgainst int `json:"runs_against"`
	BallsBowled int `json:"balls_bowled"`

	// NetRunRate is rounded to 3 decimal places.
	NetRunRate float64 `json:"net_run_rate"`

	Position      int `json:"position"`
	GroupPosition int `json:"group_position"`
}

// PointsTable is the full standings output: rows grouped by group name plus
// the overall ordering.
type PointsTable struct {
	Groups map[string][]StandingRow `json:"groups"`
	All    []StandingRow            `json:"all"`
}

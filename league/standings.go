package league

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/cricboard/league-system/models"
)

// Form markers appended per match.
const (
	formWin      = "W"
	formLoss     = "L"
	formTie      = "T"
	formNoResult = "N"
)

// BallsFromOvers converts an "overs.balls" display string into a ball count:
// "18.3" → 111, "20" → 120. The ball digit is capped at six. Malformed input
// counts as zero, matching the permissive parsing used on result entry.
func BallsFromOvers(overs string) int {
	overs = strings.TrimSpace(overs)
	if overs == "" {
		return 0
	}
	parts := strings.SplitN(overs, ".", 2)
	whole, err := strconv.Atoi(parts[0])
	if err != nil || whole < 0 {
		return 0
	}
	balls := whole * 6
	if len(parts) == 2 {
		if frac, err := strconv.Atoi(parts[1]); err == nil && frac > 0 {
			if frac > 6 {
				frac = 6
			}
			balls += frac
		}
	}
	return balls
}

// ComputeStandings derives the points table from the season's groups and its
// full match set. It is a pure function: for a fixed input the output is
// deterministic up to the documented stable-sort tie residue (two rows with
// equal points and net run rate keep their insertion order).
//
// Scoring: win 2 points, tie 1 each, draw/no result 1 each with no win, loss
// or tie counted. Matches that are not completed only extend the form
// sequence with "N".
func ComputeStandings(groups []models.Group, matches []*models.Match) models.PointsTable {
	table := models.PointsTable{
		Groups: make(map[string][]models.StandingRow),
		All:    []models.StandingRow{},
	}
	if len(groups) == 0 {
		return table
	}

	rows := make(map[int]*models.StandingRow)
	order := make([]*models.StandingRow, 0)
	for _, group := range groups {
		for _, team := range group.Teams {
			if _, ok := rows[team.TeamID]; ok {
				continue
			}
			row := &models.StandingRow{
				TeamID:    team.TeamID,
				TeamName:  team.TeamName,
				TeamCode:  team.TeamCode,
				GroupName: group.GroupName,
				Form:      []string{},
			}
			rows[team.TeamID] = row
			order = append(order, row)
		}
	}

	for _, m := range matches {
		if m.TeamAID == nil || m.TeamBID == nil {
			continue
		}
		rowA, okA := rows[*m.TeamAID]
		rowB, okB := rows[*m.TeamBID]
		if !okA || !okB {
			continue
		}

		if m.Result != models.ResultCompleted {
			rowA.Form = append(rowA.Form, formNoResult)
			rowB.Form = append(rowB.Form, formNoResult)
			continue
		}

		rowA.Matches++
		rowB.Matches++

		winner := ""
		if m.Winner != nil {
			winner = *m.Winner
		}
		switch winner {
		case models.WinnerTeamA:
			rowA.Won++
			rowA.Points += 2
			rowA.Form = append(rowA.Form, formWin)
			rowB.Lost++
			rowB.Form = append(rowB.Form, formLoss)
		case models.WinnerTeamB:
			rowB.Won++
			rowB.Points += 2
			rowB.Form = append(rowB.Form, formWin)
			rowA.Lost++
			rowA.Form = append(rowA.Form, formLoss)
		case models.WinnerTie:
			rowA.Tied++
			rowB.Tied++
			rowA.Points++
			rowB.Points++
			rowA.Form = append(rowA.Form, formTie)
			rowB.Form = append(rowB.Form, formTie)
		case models.WinnerDraw, models.WinnerNoResult:
			rowA.Points++
			rowB.Points++
			rowA.Form = append(rowA.Form, formNoResult)
			rowB.Form = append(rowB.Form, formNoResult)
		default:
			rowA.Form = append(rowA.Form, formNoResult)
			rowB.Form = append(rowB.Form, formNoResult)
		}

		ballsA := BallsFromOvers(m.TeamAScore.Overs)
		ballsB := BallsFromOvers(m.TeamBScore.Overs)
		rowA.RunsFor += m.TeamAScore.Runs
		rowA.BallsFaced += ballsA
		rowA.RunsAgainst += m.TeamBScore.Runs
		rowA.BallsBowled += ballsB
		rowB.RunsFor += m.TeamBScore.Runs
		rowB.BallsFaced += ballsB
		rowB.RunsAgainst += m.TeamAScore.Runs
		rowB.BallsBowled += ballsA
	}

	for _, row := range order {
		row.NetRunRate = netRunRate(row.RunsFor, row.BallsFaced, row.RunsAgainst, row.BallsBowled)
	}

	overall := make([]*models.StandingRow, len(order))
	copy(overall, order)
	sortRows(overall)
	for i, row := range overall {
		row.Position = i + 1
	}

	for _, group := range groups {
		groupRows := make([]*models.StandingRow, 0, len(group.Teams))
		for _, team := range group.Teams {
			if row, ok := rows[team.TeamID]; ok {
				groupRows = append(groupRows, row)
			}
		}
		sortRows(groupRows)
		out := make([]models.StandingRow, len(groupRows))
		for i, row := range groupRows {
			row.GroupPosition = i + 1
			out[i] = *row
		}
		table.Groups[group.GroupName] = out
	}

	table.All = make([]models.StandingRow, len(overall))
	for i, row := range overall {
		table.All[i] = *row
	}
	return table
}

// sortRows orders by points descending, then net run rate descending. The
// sort is stable so equal rows keep their insertion order.
func sortRows(rows []*models.StandingRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].NetRunRate > rows[j].NetRunRate
	})
}

func netRunRate(runsFor, ballsFaced, runsAgainst, ballsBowled int) float64 {
	var forRate, againstRate float64
	if ballsFaced > 0 {
		forRate = float64(runsFor) / (float64(ballsFaced) / 6.0)
	}
	if ballsBowled > 0 {
		againstRate = float64(runsAgainst) / (float64(ballsBowled) / 6.0)
	}
	return math.Round((forRate-againstRate)*1000) / 1000
}

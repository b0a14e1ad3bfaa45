package league

import (
	"time"

	"github.com/cricboard/league-system/models"
)

// LeagueFixtures creates one league-stage match per unordered pair of teams
// inside each group. For group teams [t0..tn-1] the pairs are enumerated as
// (0,1),(0,2),…,(0,n-1),(1,2),… and match numbers run sequentially across
// groups starting at 1, in group order.
func LeagueFixtures(seasonNumber int, groups []models.Group, matchTime time.Time, venue string) []*models.Match {
	matches := make([]*models.Match, 0)
	matchNumber := 0

	for _, group := range groups {
		groupName := group.GroupName
		for i := 0; i < len(group.Teams); i++ {
			for j := i + 1; j < len(group.Teams); j++ {
				teamA := group.Teams[i]
				teamB := group.Teams[j]
				matchNumber++

				aID, bID := teamA.TeamID, teamB.TeamID
				name := groupName
				matches = append(matches, &models.Match{
					SeasonNumber: seasonNumber,
					Stage:        models.StageLeague,
					GroupName:    &name,
					TeamAID:      &aID,
					TeamBID:      &bID,
					TeamAName:    teamA.TeamName,
					TeamBName:    teamB.TeamName,
					Venue:        venue,
					MatchTime:    matchTime,
					Result:       models.ResultUpcoming,
					MatchNumber:  matchNumber,
				})
			}
		}
	}

	return matches
}

package league

import (
	"errors"
	"math/rand"

	"github.com/cricboard/league-system/models"
)

// maxGroupSize is the chunk size used when partitioning approved teams.
const maxGroupSize = 4

var ErrNotEnoughTeams = errors.New("at least 2 approved teams are required to form groups")

// PartitionTeams produces a random partition of the team list into named
// groups of up to four teams. The shuffle is a Fisher–Yates pass over a copy
// of the input; the caller controls determinism through rng.
//
// If the trailing group ends up with a single team, one team is moved into it
// from the first earlier group holding more than two. When no such donor
// exists the single-team group stands.
func PartitionTeams(teams []models.Team, rng *rand.Rand) ([]models.Group, error) {
	if len(teams) < 2 {
		return nil, ErrNotEnoughTeams
	}

	shuffled := make([]models.Team, len(teams))
	copy(shuffled, teams)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	groups := make([]models.Group, 0, (len(shuffled)+maxGroupSize-1)/maxGroupSize)
	for start := 0; start < len(shuffled); start += maxGroupSize {
		end := start + maxGroupSize
		if end > len(shuffled) {
			end = len(shuffled)
		}
		group := models.Group{GroupName: groupName(len(groups))}
		for _, t := range shuffled[start:end] {
			group.Teams = append(group.Teams, models.GroupTeam{
				TeamID:   t.ID,
				TeamName: t.Name,
				TeamCode: t.ShortCode,
			})
		}
		groups = append(groups, group)
	}

	repairTrailingGroup(groups)
	return groups, nil
}

func repairTrailingGroup(groups []models.Group) {
	if len(groups) < 2 {
		return
	}
	last := &groups[len(groups)-1]
	if len(last.Teams) != 1 {
		return
	}
	for i := 0; i < len(groups)-1; i++ {
		donor := &groups[i]
		if len(donor.Teams) > 2 {
			moved := donor.Teams[len(donor.Teams)-1]
			donor.Teams = donor.Teams[:len(donor.Teams)-1]
			last.Teams = append(last.Teams, moved)
			return
		}
	}
}

func groupName(index int) string {
	return string(rune('A' + index))
}

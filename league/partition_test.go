package league

import (
	"math/rand"
	"testing"

	"github.com/cricboard/league-system/models"
)

func makeTeams(n int) []models.Team {
	teams := make([]models.Team, n)
	for i := range teams {
		teams[i] = models.Team{
			ID:        i + 1,
			Name:      "Team " + string(rune('A'+i%26)),
			ShortCode: "T" + string(rune('A'+i%26)),
			Status:    models.TeamStatusApproved,
		}
	}
	return teams
}

func TestPartitionTeamsNotEnough(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range []int{0, 1} {
		if _, err := PartitionTeams(makeTeams(n), rng); err != ErrNotEnoughTeams {
			t.Errorf("n=%d: expected ErrNotEnoughTeams, got %v", n, err)
		}
	}
}

func TestPartitionTeamsIsAPartition(t *testing.T) {
	for n := 2; n <= 25; n++ {
		rng := rand.New(rand.NewSource(int64(n)))
		teams := makeTeams(n)
		groups, err := PartitionTeams(teams, rng)
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}

		seen := make(map[int]string)
		total := 0
		for _, g := range groups {
			if len(g.Teams) > maxGroupSize {
				t.Errorf("n=%d: group %s has %d teams, max is %d", n, g.GroupName, len(g.Teams), maxGroupSize)
			}
			for _, gt := range g.Teams {
				if prev, dup := seen[gt.TeamID]; dup {
					t.Errorf("n=%d: team %d appears in groups %s and %s", n, gt.TeamID, prev, g.GroupName)
				}
				seen[gt.TeamID] = g.GroupName
				total++
			}
		}
		if total != n {
			t.Errorf("n=%d: partition covers %d teams", n, total)
		}
		for _, team := range teams {
			if _, ok := seen[team.ID]; !ok {
				t.Errorf("n=%d: team %d missing from partition", n, team.ID)
			}
		}
	}
}

func TestPartitionTeamsGroupNames(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	groups, err := PartitionTeams(makeTeams(12), rng)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"A", "B", "C"}
	if len(groups) != len(want) {
		t.Fatalf("expected %d groups, got %d", len(want), len(groups))
	}
	for i, g := range groups {
		if g.GroupName != want[i] {
			t.Errorf("group %d named %q, want %q", i, g.GroupName, want[i])
		}
	}
}

func TestPartitionTeamsRepairsSingletonTrailingGroup(t *testing.T) {
	// Nine teams chunk as [4,4,1]; the repair moves one team from the first
	// group holding more than two, giving [3,4,2].
	rng := rand.New(rand.NewSource(42))
	groups, err := PartitionTeams(makeTeams(9), rng)
	if err != nil {
		t.Fatal(err)
	}
	sizes := groupSizes(groups)
	want := []int{3, 4, 2}
	if len(sizes) != len(want) {
		t.Fatalf("expected %d groups, got %v", len(want), sizes)
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Fatalf("expected sizes %v, got %v", want, sizes)
		}
	}
}

func TestPartitionTeamsFiveTeams(t *testing.T) {
	// Five teams chunk as [4,1]; repair yields [3,2].
	rng := rand.New(rand.NewSource(3))
	groups, err := PartitionTeams(makeTeams(5), rng)
	if err != nil {
		t.Fatal(err)
	}
	sizes := groupSizes(groups)
	if len(sizes) != 2 || sizes[0] != 3 || sizes[1] != 2 {
		t.Fatalf("expected sizes [3 2], got %v", sizes)
	}
}

func TestPartitionTeamsDeterministicForFixedSeed(t *testing.T) {
	first, err := PartitionTeams(makeTeams(10), rand.New(rand.NewSource(99)))
	if err != nil {
		t.Fatal(err)
	}
	second, err := PartitionTeams(makeTeams(10), rand.New(rand.NewSource(99)))
	if err != nil {
		t.Fatal(err)
	}
	for i := range first {
		for j := range first[i].Teams {
			if first[i].Teams[j].TeamID != second[i].Teams[j].TeamID {
				t.Fatalf("same seed produced different partitions")
			}
		}
	}
}

func TestPartitionTeamsDoesNotMutateInput(t *testing.T) {
	teams := makeTeams(8)
	original := make([]int, len(teams))
	for i, team := range teams {
		original[i] = team.ID
	}
	if _, err := PartitionTeams(teams, rand.New(rand.NewSource(5))); err != nil {
		t.Fatal(err)
	}
	for i, team := range teams {
		if team.ID != original[i] {
			t.Fatalf("input slice order changed at %d", i)
		}
	}
}

func groupSizes(groups []models.Group) []int {
	sizes := make([]int, len(groups))
	for i, g := range groups {
		sizes[i] = len(g.Teams)
	}
	return sizes
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/cricboard/league-system/models"
)

func newTestTrigger(seasons *fakeSeasonRepo, schedules ScheduleService, clock clockwork.Clock) *ScheduleAutoTrigger {
	return NewScheduleAutoTrigger(seasons, schedules, clock, time.Minute, testLogger())
}

func TestAutoTriggerGeneratesDueSeasons(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC))
	now := clock.Now()

	seasons := newFakeSeasonRepo()
	// Explicit generation time in the past: due.
	genTime := now.Add(-time.Hour)
	seasons.add(models.Season{SeasonNumber: 1, EntryDeadline: now.Add(-48 * time.Hour), ScheduleGenerationTime: &genTime})
	// Deadline passed but still inside the grace window: not due.
	seasons.add(models.Season{SeasonNumber: 2, EntryDeadline: now.Add(-time.Hour)})
	// Deadline past the grace window: due.
	seasons.add(models.Season{SeasonNumber: 3, EntryDeadline: now.Add(-24 * time.Hour)})

	teams := newFakeTeamRepo()
	teams.addApproved(1, "Strikers", "Blasters")
	teams.addApproved(2, "Royals", "Titans")
	teams.addApproved(3, "Chargers", "Knights")
	scheduleRepo := newFakeScheduleRepo()
	svc := newTestScheduleService(seasons, teams, scheduleRepo, newFakeMatchRepo())

	trigger := newTestTrigger(seasons, svc, clock)
	trigger.RunOnce(ctx)

	for seasonNumber, want := range map[int]bool{1: true, 2: false, 3: true} {
		got, _ := scheduleRepo.ExistsForSeason(ctx, seasonNumber)
		if got != want {
			t.Errorf("season %d schedule exists = %v, want %v", seasonNumber, got, want)
		}
	}
}

func TestAutoTriggerSkipsSeasonsWithSchedules(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC))

	seasons := newFakeSeasonRepo()
	seasons.add(models.Season{SeasonNumber: 1, EntryDeadline: clock.Now().Add(-24 * time.Hour)})
	teams := newFakeTeamRepo()
	teams.addApproved(1, "Strikers", "Blasters")
	scheduleRepo := newFakeScheduleRepo()
	svc := newTestScheduleService(seasons, teams, scheduleRepo, newFakeMatchRepo())

	trigger := newTestTrigger(seasons, svc, clock)
	trigger.RunOnce(ctx)
	first, _ := scheduleRepo.GetBySeason(ctx, 1)

	// A second tick must not rebuild the schedule.
	trigger.RunOnce(ctx)
	second, _ := scheduleRepo.GetBySeason(ctx, 1)
	if first.ID != second.ID {
		t.Errorf("schedule was regenerated: id %d became %d", first.ID, second.ID)
	}
	if scheduleRepo.deletes != 0 {
		t.Errorf("auto-trigger deleted %d schedules", scheduleRepo.deletes)
	}
}

func TestAutoTriggerIsolatesPerSeasonFailures(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC))

	seasons := newFakeSeasonRepo()
	seasons.add(models.Season{SeasonNumber: 1, EntryDeadline: clock.Now().Add(-24 * time.Hour)})
	seasons.add(models.Season{SeasonNumber: 2, EntryDeadline: clock.Now().Add(-24 * time.Hour)})
	teams := newFakeTeamRepo()
	// Season 1 has a single team and cannot be grouped; season 2 is fine.
	teams.addApproved(1, "Strikers")
	teams.addApproved(2, "Royals", "Titans")
	scheduleRepo := newFakeScheduleRepo()
	svc := newTestScheduleService(seasons, teams, scheduleRepo, newFakeMatchRepo())

	trigger := newTestTrigger(seasons, svc, clock)
	trigger.RunOnce(ctx)

	if exists, _ := scheduleRepo.ExistsForSeason(ctx, 1); exists {
		t.Error("season 1 should not have been grouped")
	}
	if exists, _ := scheduleRepo.ExistsForSeason(ctx, 2); !exists {
		t.Error("season 2 generation was blocked by season 1 failure")
	}
}

func TestAutoTriggerRunStopsOnCancel(t *testing.T) {
	clock := clockwork.NewFakeClock()
	seasons := newFakeSeasonRepo()
	svc := newTestScheduleService(seasons, newFakeTeamRepo(), newFakeScheduleRepo(), newFakeMatchRepo())
	trigger := newTestTrigger(seasons, svc, clock)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		trigger.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}

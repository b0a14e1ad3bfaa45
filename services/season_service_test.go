package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCreateSeasonAssignsSequentialNumbers(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSeasonRepo()
	svc := NewSeasonService(repo)

	deadline := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	first, err := svc.Create(ctx, CreateSeasonInput{EntryDeadline: deadline})
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Create(ctx, CreateSeasonInput{EntryDeadline: deadline.AddDate(0, 3, 0)})
	if err != nil {
		t.Fatal(err)
	}
	if first.SeasonNumber != 1 || second.SeasonNumber != 2 {
		t.Errorf("season numbers %d, %d", first.SeasonNumber, second.SeasonNumber)
	}
}

func TestCreateSeasonRequiresDeadline(t *testing.T) {
	svc := NewSeasonService(newFakeSeasonRepo())
	if _, err := svc.Create(context.Background(), CreateSeasonInput{}); !errors.Is(err, ErrEntryDeadlineRequired) {
		t.Fatalf("expected ErrEntryDeadlineRequired, got %v", err)
	}
}

func TestSetCurrentIsExclusive(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSeasonRepo()
	svc := NewSeasonService(repo)

	deadline := time.Now().AddDate(0, 1, 0)
	if _, err := svc.Create(ctx, CreateSeasonInput{EntryDeadline: deadline, IsCurrent: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx, CreateSeasonInput{EntryDeadline: deadline, IsCurrent: true}); err != nil {
		t.Fatal(err)
	}

	seasons, _ := svc.List(ctx)
	current := 0
	for _, s := range seasons {
		if s.IsCurrent {
			current++
			if s.SeasonNumber != 2 {
				t.Errorf("season %d is current, want 2", s.SeasonNumber)
			}
		}
	}
	if current != 1 {
		t.Fatalf("%d seasons marked current", current)
	}

	if err := svc.SetCurrent(ctx, 99); !errors.Is(err, ErrSeasonNotFound) {
		t.Fatalf("expected ErrSeasonNotFound, got %v", err)
	}
}

func TestCreateSeasonInsertsAsNotCurrent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSeasonRepo()
	svc := NewSeasonService(repo)

	deadline := time.Now().AddDate(0, 1, 0)
	if _, err := svc.Create(ctx, CreateSeasonInput{EntryDeadline: deadline, IsCurrent: true}); err != nil {
		t.Fatal(err)
	}

	// If the follow-up SetCurrent fails, the freshly inserted row must not
	// be current: only SetCurrent writes the flag.
	repo.setCurrentErr = errors.New("db down")
	if _, err := svc.Create(ctx, CreateSeasonInput{EntryDeadline: deadline, IsCurrent: true}); err == nil {
		t.Fatal("expected the SetCurrent failure to surface")
	}

	seasons, _ := svc.List(ctx)
	current := 0
	for _, s := range seasons {
		if s.IsCurrent {
			current++
			if s.SeasonNumber != 1 {
				t.Errorf("season %d is current, want 1", s.SeasonNumber)
			}
		}
	}
	if current != 1 {
		t.Fatalf("%d seasons marked current", current)
	}
}

func TestUpdateScheduleTimeAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewSeasonService(newFakeSeasonRepo())

	season, err := svc.Create(ctx, CreateSeasonInput{EntryDeadline: time.Now().AddDate(0, 1, 0)})
	if err != nil {
		t.Fatal(err)
	}

	at := time.Now().AddDate(0, 2, 0)
	if err := svc.UpdateScheduleTime(ctx, season.SeasonNumber, at); err != nil {
		t.Fatal(err)
	}
	stored, err := svc.GetByNumber(ctx, season.SeasonNumber)
	if err != nil {
		t.Fatal(err)
	}
	if stored.ScheduleGenerationTime == nil || !stored.ScheduleGenerationTime.Equal(at) {
		t.Errorf("schedule time = %v", stored.ScheduleGenerationTime)
	}

	if err := svc.Delete(ctx, season.SeasonNumber); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GetByNumber(ctx, season.SeasonNumber); !errors.Is(err, ErrSeasonNotFound) {
		t.Fatalf("expected ErrSeasonNotFound after delete, got %v", err)
	}
}

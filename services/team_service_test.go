package services

import (
	"context"
	"errors"
	"testing"

	"github.com/cricboard/league-system/models"
)

func TestRegisterAssignsShortCodeAndPendingStatus(t *testing.T) {
	ctx := context.Background()
	repo := newFakeTeamRepo()
	svc := NewTeamService(repo, newFakeUserRepo(), nil, testLogger())

	team, err := svc.Register(ctx, RegisterTeamInput{
		SeasonNumber: 1,
		Name:         "  Strikers  ",
		PlayerNames:  []string{"Asha", "", "Ravi"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if team.Name != "Strikers" {
		t.Errorf("name not trimmed: %q", team.Name)
	}
	if team.Status != models.TeamStatusPending {
		t.Errorf("new team status is %s", team.Status)
	}
	if team.ShortCode == "" {
		t.Error("short code was not assigned")
	}
	if len(team.Roster) != 2 {
		t.Errorf("blank player names should be dropped, roster has %d", len(team.Roster))
	}

	stored, _ := repo.GetByID(ctx, team.ID)
	if stored.ShortCode != team.ShortCode {
		t.Errorf("short code not persisted: %q vs %q", stored.ShortCode, team.ShortCode)
	}
}

func TestRegisterRequiresName(t *testing.T) {
	svc := NewTeamService(newFakeTeamRepo(), newFakeUserRepo(), nil, testLogger())
	if _, err := svc.Register(context.Background(), RegisterTeamInput{SeasonNumber: 1, Name: "   "}); !errors.Is(err, ErrTeamNameRequired) {
		t.Fatalf("expected ErrTeamNameRequired, got %v", err)
	}
}

func TestRegisterWithLogoRequiresUploader(t *testing.T) {
	svc := NewTeamService(newFakeTeamRepo(), newFakeUserRepo(), nil, testLogger())
	_, err := svc.Register(context.Background(), RegisterTeamInput{
		SeasonNumber: 1,
		Name:         "Strikers",
		Logo:         &LogoUpload{ContentType: "image/png"},
	})
	if !errors.Is(err, ErrUploadsUnavailable) {
		t.Fatalf("expected ErrUploadsUnavailable, got %v", err)
	}
}

func TestTeamStatusTransitions(t *testing.T) {
	ctx := context.Background()
	repo := newFakeTeamRepo()
	svc := NewTeamService(repo, newFakeUserRepo(), nil, testLogger())

	team, err := svc.Register(ctx, RegisterTeamInput{SeasonNumber: 1, Name: "Strikers"})
	if err != nil {
		t.Fatal(err)
	}

	approved, err := svc.Approve(ctx, team.ID)
	if err != nil {
		t.Fatal(err)
	}
	if approved.Status != models.TeamStatusApproved {
		t.Errorf("status is %s", approved.Status)
	}

	// Approved teams cannot be re-reviewed.
	if _, err := svc.Reject(ctx, team.ID); !errors.Is(err, ErrInvalidTeamStatusChange) {
		t.Fatalf("expected ErrInvalidTeamStatusChange, got %v", err)
	}

	if _, err := svc.Approve(ctx, 999); !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestBindRosterSlotAttachesPlayerCode(t *testing.T) {
	ctx := context.Background()
	teams := newFakeTeamRepo()
	users := newFakeUserRepo()
	svc := NewTeamService(teams, users, nil, testLogger())

	code := "K7QX"
	users.Create(ctx, &models.User{
		Name:       "Ravi",
		Email:      "ravi@example.com",
		Role:       models.RolePlayer,
		PlayerCode: &code,
	})

	team, err := svc.Register(ctx, RegisterTeamInput{
		SeasonNumber: 1,
		Name:         "Strikers",
		PlayerNames:  []string{"Asha", "Ravi"},
	})
	if err != nil {
		t.Fatal(err)
	}

	bound, err := svc.BindRosterSlot(ctx, team.ID, 2, " k7qx ")
	if err != nil {
		t.Fatal(err)
	}
	slot := bound.Roster[1]
	if slot.PlayerCode == nil || *slot.PlayerCode != code {
		t.Errorf("slot 2 player code = %v, want %q", slot.PlayerCode, code)
	}
	if bound.Roster[0].PlayerCode != nil {
		t.Errorf("slot 1 must stay unbound, got %q", *bound.Roster[0].PlayerCode)
	}
}

func TestBindRosterSlotRejectsUnknownCodes(t *testing.T) {
	ctx := context.Background()
	teams := newFakeTeamRepo()
	users := newFakeUserRepo()
	svc := NewTeamService(teams, users, nil, testLogger())

	team, err := svc.Register(ctx, RegisterTeamInput{
		SeasonNumber: 1,
		Name:         "Strikers",
		PlayerNames:  []string{"Asha"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.BindRosterSlot(ctx, team.ID, 1, "ZZZZ"); !errors.Is(err, ErrPlayerCodeUnknown) {
		t.Fatalf("expected ErrPlayerCodeUnknown, got %v", err)
	}
	if _, err := svc.BindRosterSlot(ctx, team.ID, 1, ""); !errors.Is(err, ErrPlayerCodeUnknown) {
		t.Fatalf("expected ErrPlayerCodeUnknown for an empty code, got %v", err)
	}

	// A code held by a non-player account does not qualify.
	adminCode := "A1B2"
	users.Create(ctx, &models.User{
		Name:       "Ops",
		Email:      "ops@example.com",
		Role:       models.RoleAdmin,
		PlayerCode: &adminCode,
	})
	if _, err := svc.BindRosterSlot(ctx, team.ID, 1, adminCode); !errors.Is(err, ErrPlayerCodeUnknown) {
		t.Fatalf("expected ErrPlayerCodeUnknown for a non-player code, got %v", err)
	}

	playerCode := "C3D4"
	users.Create(ctx, &models.User{
		Name:       "Ravi",
		Email:      "ravi@example.com",
		Role:       models.RolePlayer,
		PlayerCode: &playerCode,
	})
	if _, err := svc.BindRosterSlot(ctx, team.ID, 5, playerCode); !errors.Is(err, ErrRosterSlotNotFound) {
		t.Fatalf("expected ErrRosterSlotNotFound, got %v", err)
	}
	if _, err := svc.BindRosterSlot(ctx, 999, 1, playerCode); !errors.Is(err, ErrRosterSlotNotFound) {
		t.Fatalf("expected ErrRosterSlotNotFound for an unknown team, got %v", err)
	}
}

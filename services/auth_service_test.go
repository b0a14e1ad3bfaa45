package services

import (
	"context"
	"errors"
	"testing"

	"github.com/cricboard/league-system/models"
)

func TestRegisterUserValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserRepo())

	if _, err := svc.Register(ctx, RegisterUserInput{Name: "", Email: "a@b.c", Password: "longenough"}); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
	if _, err := svc.Register(ctx, RegisterUserInput{Name: "Asha", Email: "a@b.c", Password: "short"}); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
	if _, err := svc.Register(ctx, RegisterUserInput{Name: "Asha", Email: "a@b.c", Password: "longenough", Role: "admin"}); !errors.Is(err, ErrForbiddenOperation) {
		t.Fatalf("admin self-registration must be refused, got %v", err)
	}
}

func TestRegisterPlayerGetsCode(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserRepo())

	user, err := svc.Register(ctx, RegisterUserInput{
		Name:     "Ravi",
		Email:    "Ravi@Example.com",
		Password: "longenough",
		Role:     string(models.RolePlayer),
	})
	if err != nil {
		t.Fatal(err)
	}
	if user.Email != "ravi@example.com" {
		t.Errorf("email not normalized: %q", user.Email)
	}
	if user.PlayerCode == nil || len(*user.PlayerCode) != 4 {
		t.Fatalf("player code = %v", user.PlayerCode)
	}
	if user.PasswordHash == "longenough" || user.PasswordHash == "" {
		t.Error("password stored without hashing")
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserRepo())

	if _, err := svc.Register(ctx, RegisterUserInput{Name: "Asha", Email: "asha@example.com", Password: "longenough"}); err != nil {
		t.Fatal(err)
	}

	user, err := svc.Login(ctx, "ASHA@example.com", "longenough")
	if err != nil {
		t.Fatal(err)
	}
	if user.Role != models.RoleUser {
		t.Errorf("default role is %s", user.Role)
	}

	if _, err := svc.Login(ctx, "asha@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "longenough"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	if _, err := svc.Register(ctx, RegisterUserInput{Name: "Asha Again", Email: "asha@example.com", Password: "longenough"}); !errors.Is(err, ErrUserEmailConflict) {
		t.Fatalf("expected ErrUserEmailConflict, got %v", err)
	}
}

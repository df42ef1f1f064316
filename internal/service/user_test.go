package service

import (
	"context"
	"testing"
	"time"

	"github.com/ecowatch/pollution-api/internal/model"
	"github.com/ecowatch/pollution-api/internal/repository"
)

func newTestUserService() *UserService {
	return NewUserService(repository.NewUserRepository(nil), "test-secret", time.Hour)
}

func TestUserCreate_MissingFields(t *testing.T) {
	svc := newTestUserService()

	cases := []model.CreateUserRequest{
		{},
		{Nom: "Doe", Prenom: "Jane", Login: "jdoe"},
		{Nom: "Doe", Prenom: "Jane", Pass: "secret42"},
		{Prenom: "Jane", Login: "jdoe", Pass: "secret42"},
	}
	for i, req := range cases {
		if _, err := svc.Create(context.Background(), req); err != ErrMissingFields {
			t.Errorf("case %d: expected ErrMissingFields, got %v", i, err)
		}
	}
}

func TestUserCreate_InvalidLastName(t *testing.T) {
	svc := newTestUserService()

	_, err := svc.Create(context.Background(), model.CreateUserRequest{
		Nom: "Doe42", Prenom: "Jane", Login: "jdoe", Pass: "secret42",
	})
	if err != ErrLastNameInvalid {
		t.Errorf("expected ErrLastNameInvalid, got %v", err)
	}
}

func TestUserCreate_InvalidFirstName(t *testing.T) {
	svc := newTestUserService()

	_, err := svc.Create(context.Background(), model.CreateUserRequest{
		Nom: "Doe", Prenom: "Jane!", Login: "jdoe", Pass: "secret42",
	})
	if err != ErrFirstNameInvalid {
		t.Errorf("expected ErrFirstNameInvalid, got %v", err)
	}
}

func TestUserCreate_InvalidLogin(t *testing.T) {
	svc := newTestUserService()

	for _, login := range []string{"ab", "jane doe", "jane@doe"} {
		_, err := svc.Create(context.Background(), model.CreateUserRequest{
			Nom: "Doe", Prenom: "Jane", Login: login, Pass: "secret42",
		})
		if err != ErrLoginInvalid {
			t.Errorf("login %q: expected ErrLoginInvalid, got %v", login, err)
		}
	}
}

func TestUserCreate_ShortPassword(t *testing.T) {
	svc := newTestUserService()

	_, err := svc.Create(context.Background(), model.CreateUserRequest{
		Nom: "Doe", Prenom: "Jane", Login: "jdoe", Pass: "five5",
	})
	if err != ErrPasswordInvalid {
		t.Errorf("expected ErrPasswordInvalid, got %v", err)
	}
}

func TestUserGetByID_BadUUID(t *testing.T) {
	svc := newTestUserService()

	for _, id := range []string{"123", "not-a-uuid", "6f9619ff-8b86-4d01-b42d"} {
		if _, err := svc.GetByID(context.Background(), id); err != ErrInvalidUserID {
			t.Errorf("id %q: expected ErrInvalidUserID, got %v", id, err)
		}
	}
}

func TestUserGetByLogin_BadLogin(t *testing.T) {
	svc := newTestUserService()

	if _, err := svc.GetByLogin(context.Background(), "a b"); err != ErrLoginInvalid {
		t.Errorf("expected ErrLoginInvalid, got %v", err)
	}
}

func TestUserUpdate_BadUUID(t *testing.T) {
	svc := newTestUserService()

	_, err := svc.Update(context.Background(), "42", model.UpdateUserRequest{})
	if err != ErrInvalidUserID {
		t.Errorf("expected ErrInvalidUserID, got %v", err)
	}
}

func TestUserUpdate_InvalidFields(t *testing.T) {
	svc := newTestUserService()
	id := "6f9619ff-8b86-4d01-b42d-00cf4fc964ff"

	nom := "Doe42"
	if _, err := svc.Update(context.Background(), id, model.UpdateUserRequest{Nom: &nom}); err != ErrLastNameInvalid {
		t.Errorf("expected ErrLastNameInvalid, got %v", err)
	}

	pass := "short"
	if _, err := svc.Update(context.Background(), id, model.UpdateUserRequest{Pass: &pass}); err != ErrPasswordInvalid {
		t.Errorf("expected ErrPasswordInvalid, got %v", err)
	}
}

func TestUserDelete_BadUUID(t *testing.T) {
	svc := newTestUserService()

	if _, err := svc.Delete(context.Background(), "nope"); err != ErrInvalidUserID {
		t.Errorf("expected ErrInvalidUserID, got %v", err)
	}
}

func TestUserCheckLogin_BadLogin(t *testing.T) {
	svc := newTestUserService()

	if _, err := svc.CheckLogin(context.Background(), "a b"); err != ErrLoginInvalid {
		t.Errorf("expected ErrLoginInvalid, got %v", err)
	}
}

func TestAuthenticate_BadLogin(t *testing.T) {
	svc := newTestUserService()

	_, err := svc.Authenticate(context.Background(), model.LoginRequest{Login: "a b", Pass: "secret42"})
	if err != ErrLoginInvalid {
		t.Errorf("expected ErrLoginInvalid, got %v", err)
	}
}

func TestAuthenticate_MissingPassword(t *testing.T) {
	svc := newTestUserService()

	_, err := svc.Authenticate(context.Background(), model.LoginRequest{Login: "alice"})
	if err != ErrPasswordRequired {
		t.Errorf("expected ErrPasswordRequired, got %v", err)
	}
}

func TestUsersToResponse_NeverNil(t *testing.T) {
	result := usersToResponse(nil)
	if result == nil {
		t.Fatal("expected non-nil empty slice, got nil")
	}
	if len(result) != 0 {
		t.Fatalf("expected empty slice, got %d elements", len(result))
	}
}

func TestDropEmpty(t *testing.T) {
	empty := ""
	if dropEmpty(&empty) != nil {
		t.Error("expected nil for pointer to empty string")
	}
	if dropEmpty(nil) != nil {
		t.Error("expected nil for nil input")
	}
	v := "x"
	if dropEmpty(&v) == nil {
		t.Error("expected non-nil for pointer to non-empty string")
	}
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/ecowatch/pollution-api/internal/model"
)

func TestNewRepositories(t *testing.T) {
	if NewUserRepository(nil) == nil {
		t.Fatal("expected non-nil UserRepository")
	}
	if NewPollutionRepository(nil) == nil {
		t.Fatal("expected non-nil PollutionRepository")
	}
}

func TestSentinelErrors(t *testing.T) {
	if ErrUserNotFound.Error() != "user not found" {
		t.Fatalf("unexpected error message: %s", ErrUserNotFound.Error())
	}
	if ErrDuplicateLogin.Error() != "login already exists" {
		t.Fatalf("unexpected error message: %s", ErrDuplicateLogin.Error())
	}
	if ErrPollutionNotFound.Error() != "pollution not found" {
		t.Fatalf("unexpected error message: %s", ErrPollutionNotFound.Error())
	}
}

func TestIsDuplicateEntryError(t *testing.T) {
	if isDuplicateEntryError(nil) {
		t.Fatal("nil error should not be a duplicate entry error")
	}
	if isDuplicateEntryError(ErrUserNotFound) {
		t.Fatal("ErrUserNotFound should not be a duplicate entry error")
	}
}

func TestUserCreate_DuplicateEntryMapsToSentinel(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users (id, nom, prenom, login, pass_hash) VALUES (?, ?, ?, ?, ?)`)).
		WithArgs("5f3a", "Doe", "Jane", "jdoe", "hash").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'jdoe' for key 'users.uq_users_login'"))

	err := repo.Create(context.Background(), &model.User{
		ID: "5f3a", Nom: "Doe", Prenom: "Jane", Login: "jdoe", PassHash: "hash",
	})
	if !errors.Is(err, ErrDuplicateLogin) {
		t.Errorf("Create() error = %v, want ErrDuplicateLogin", err)
	}
}

func TestUserUpdate_DuplicateEntryMapsToSentinel(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	login := "jdoe"
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET login = ? WHERE id = ?`)).
		WithArgs(login, "5f3a").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'jdoe' for key 'users.uq_users_login'"))

	_, err := repo.Update(context.Background(), "5f3a", model.UpdateUserRequest{Login: &login})
	if !errors.Is(err, ErrDuplicateLogin) {
		t.Errorf("Update() error = %v, want ErrDuplicateLogin", err)
	}
}

func TestUserUpdate_ReportsAffectedRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	nom := "Doe"
	query := regexp.QuoteMeta(`UPDATE users SET nom = ? WHERE id = ?`)

	mock.ExpectExec(query).WithArgs(nom, "5f3a").WillReturnResult(sqlmock.NewResult(0, 1))
	affected, err := repo.Update(context.Background(), "5f3a", model.UpdateUserRequest{Nom: &nom})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if affected != 1 {
		t.Errorf("affected = %d, want 1", affected)
	}

	mock.ExpectExec(query).WithArgs(nom, "9c1b").WillReturnResult(sqlmock.NewResult(0, 0))
	affected, err = repo.Update(context.Background(), "9c1b", model.UpdateUserRequest{Nom: &nom})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if affected != 0 {
		t.Errorf("affected = %d, want 0", affected)
	}
}

func TestUserLoginExists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM users WHERE login = ? LIMIT 1`)).
		WithArgs("jdoe").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	taken, err := repo.LoginExists(context.Background(), "jdoe", "")
	if err != nil {
		t.Fatalf("LoginExists() error = %v", err)
	}
	if !taken {
		t.Error("LoginExists() = false, want true for an existing login")
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM users WHERE login = ? LIMIT 1`)).
		WithArgs("free").
		WillReturnError(sql.ErrNoRows)
	taken, err = repo.LoginExists(context.Background(), "free", "")
	if err != nil {
		t.Fatalf("LoginExists() error = %v", err)
	}
	if taken {
		t.Error("LoginExists() = true, want false for a free login")
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM users WHERE login = ? AND id <> ? LIMIT 1`)).
		WithArgs("jdoe", "5f3a").
		WillReturnError(sql.ErrNoRows)
	taken, err = repo.LoginExists(context.Background(), "jdoe", "5f3a")
	if err != nil {
		t.Fatalf("LoginExists() error = %v", err)
	}
	if taken {
		t.Error("LoginExists() = true, want false when the only holder is excluded")
	}
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/ecowatch/pollution-api/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateLogin = errors.New("login already exists")
)

const userColumns = "id, nom, prenom, login, pass_hash"

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. The caller assigns the UUID beforehand. A
// violation of the unique login key is reported as ErrDuplicateLogin, which
// backstops the check-then-insert race on signup.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, nom, prenom, login, pass_hash) VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, user.ID, user.Nom, user.Prenom, user.Login, user.PassHash)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateLogin
		}
		return err
	}

	return nil
}

// GetByID retrieves a user by their UUID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.queryOne(ctx, query, id)
}

// GetByLogin retrieves a user by their login.
func (r *UserRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE login = ?`
	return r.queryOne(ctx, query, login)
}

func (r *UserRepository) queryOne(ctx context.Context, query string, arg any) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Nom, &user.Prenom, &user.Login, &user.PassHash,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// List retrieves all users, optionally filtered by a case-insensitive
// substring match on the last name. The filter must already be validated;
// it reaches the query as a plain LIKE argument.
func (r *UserRepository) List(ctx context.Context, nom string) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	var args []any
	if nom != "" {
		query += ` WHERE LOWER(nom) LIKE LOWER(?)`
		args = append(args, "%"+nom+"%")
	}

	return r.queryMany(ctx, query, args...)
}

// Search retrieves users matching independent substring filters on last and
// first name, combined with AND when both are present.
func (r *UserRepository) Search(ctx context.Context, nom, prenom string) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	var clauses []string
	var args []any
	if nom != "" {
		clauses = append(clauses, `LOWER(nom) LIKE LOWER(?)`)
		args = append(args, "%"+nom+"%")
	}
	if prenom != "" {
		clauses = append(clauses, `LOWER(prenom) LIKE LOWER(?)`)
		args = append(args, "%"+prenom+"%")
	}
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, ` AND `)
	}

	return r.queryMany(ctx, query, args...)
}

func (r *UserRepository) queryMany(ctx context.Context, query string, args ...any) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Nom, &u.Prenom, &u.Login, &u.PassHash); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// LoginExists reports whether a login is already held by a user other than
// excludeID. Pass an empty excludeID to check against all users.
func (r *UserRepository) LoginExists(ctx context.Context, login, excludeID string) (bool, error) {
	query := `SELECT 1 FROM users WHERE login = ?`
	args := []any{login}
	if excludeID != "" {
		query += ` AND id <> ?`
		args = append(args, excludeID)
	}

	var one int
	err := r.db.QueryRowContext(ctx, query+` LIMIT 1`, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Update applies a partial update with only the supplied fields and returns
// the affected-row count. Pass must already be hashed by the caller.
func (r *UserRepository) Update(ctx context.Context, id string, req model.UpdateUserRequest) (int64, error) {
	var sets []string
	var args []any
	if req.Nom != nil {
		sets = append(sets, "nom = ?")
		args = append(args, *req.Nom)
	}
	if req.Prenom != nil {
		sets = append(sets, "prenom = ?")
		args = append(args, *req.Prenom)
	}
	if req.Login != nil {
		sets = append(sets, "login = ?")
		args = append(args, *req.Login)
	}
	if req.Pass != nil {
		sets = append(sets, "pass_hash = ?")
		args = append(args, *req.Pass)
	}

	if len(sets) == 0 {
		return 0, nil
	}

	query := `UPDATE users SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isDuplicateEntryError(err) {
			return 0, ErrDuplicateLogin
		}
		return 0, err
	}

	return result.RowsAffected()
}

// Delete removes a user by ID and returns the affected-row count.
func (r *UserRepository) Delete(ctx context.Context, id string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// isDuplicateEntryError checks if a MySQL error is a duplicate entry error (code 1062).
func isDuplicateEntryError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ecowatch/pollution-api/internal/crypto"
	"github.com/ecowatch/pollution-api/internal/model"
	"github.com/ecowatch/pollution-api/internal/repository"
	"github.com/ecowatch/pollution-api/internal/validation"
)

var (
	ErrMissingFields          = errors.New("nom, prenom, login and pass are required")
	ErrLastNameInvalid        = errors.New("nom contains invalid characters or is too long (max 100 characters)")
	ErrFirstNameInvalid       = errors.New("prenom contains invalid characters or is too long (max 100 characters)")
	ErrLoginInvalid           = errors.New("login must contain 3 to 50 alphanumeric characters, dashes or underscores")
	ErrPasswordInvalid        = errors.New("pass must contain at least 6 characters")
	ErrLoginTaken             = errors.New("login already in use")
	ErrInvalidUserID          = errors.New("id must be a valid UUID")
	ErrUserNotFound           = errors.New("user not found")
	ErrPasswordRequired       = errors.New("pass is required")
	ErrWrongPassword          = errors.New("incorrect password")
	ErrNameFilterInvalid      = errors.New("search parameter nom contains invalid characters")
	ErrFirstNameFilterInvalid = errors.New("search parameter prenom contains invalid characters")
)

// UserService handles user business logic: field validation, login
// uniqueness, password hashing and authentication.
type UserService struct {
	repo      *repository.UserRepository
	jwtSecret string
	jwtExpiry time.Duration
}

// NewUserService creates a new UserService.
func NewUserService(repo *repository.UserRepository, secret string, expiry time.Duration) *UserService {
	return &UserService{
		repo:      repo,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Create registers a new user. Field checks run in the fixed order nom,
// prenom, login, pass; a login uniqueness lookup follows before the insert.
// The UUID is generated here, not by the store, and the password is hashed
// before it reaches the repository.
func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest) (model.UserResponse, error) {
	if req.Nom == "" || req.Prenom == "" || req.Login == "" || req.Pass == "" {
		return model.UserResponse{}, ErrMissingFields
	}
	if !validation.Required(validation.Name, req.Nom) {
		return model.UserResponse{}, ErrLastNameInvalid
	}
	if !validation.Required(validation.Name, req.Prenom) {
		return model.UserResponse{}, ErrFirstNameInvalid
	}
	if !validation.Required(validation.Login, req.Login) {
		return model.UserResponse{}, ErrLoginInvalid
	}
	if !validation.Required(validation.Password, req.Pass) {
		return model.UserResponse{}, ErrPasswordInvalid
	}

	taken, err := s.repo.LoginExists(ctx, req.Login, "")
	if err != nil {
		return model.UserResponse{}, err
	}
	if taken {
		return model.UserResponse{}, ErrLoginTaken
	}

	hash, err := crypto.HashPassword(req.Pass)
	if err != nil {
		return model.UserResponse{}, err
	}

	user := &model.User{
		ID:       uuid.NewString(),
		Nom:      req.Nom,
		Prenom:   req.Prenom,
		Login:    req.Login,
		PassHash: hash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		// The unique key on login backstops the check-then-insert race.
		if errors.Is(err, repository.ErrDuplicateLogin) {
			return model.UserResponse{}, ErrLoginTaken
		}
		return model.UserResponse{}, err
	}

	return toUserResponse(user), nil
}

// List returns all users, optionally filtered by a case-insensitive
// substring match on the last name. Passwords never appear in the result.
func (s *UserService) List(ctx context.Context, nom string) ([]model.UserResponse, error) {
	if !validation.Optional(validation.Name, nom) {
		return nil, ErrNameFilterInvalid
	}

	users, err := s.repo.List(ctx, nom)
	if err != nil {
		return nil, err
	}

	return usersToResponse(users), nil
}

// Search returns users matching independent optional substring filters on
// last and first name, AND-combined when both are supplied.
func (s *UserService) Search(ctx context.Context, nom, prenom string) ([]model.UserResponse, error) {
	if !validation.Optional(validation.Name, nom) {
		return nil, ErrNameFilterInvalid
	}
	if !validation.Optional(validation.Name, prenom) {
		return nil, ErrFirstNameFilterInvalid
	}

	users, err := s.repo.Search(ctx, nom, prenom)
	if err != nil {
		return nil, err
	}

	return usersToResponse(users), nil
}

// GetByID returns a single user without the password field.
func (s *UserService) GetByID(ctx context.Context, id string) (model.UserResponse, error) {
	if !validation.Required(validation.UserID, id) {
		return model.UserResponse{}, ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, strings.ToLower(id))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	return toUserResponse(user), nil
}

// GetByLogin returns a single user without the password field.
func (s *UserService) GetByLogin(ctx context.Context, login string) (model.UserResponse, error) {
	if !validation.Required(validation.Login, login) {
		return model.UserResponse{}, ErrLoginInvalid
	}

	user, err := s.repo.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	return toUserResponse(user), nil
}

// Update validates the supplied fields and applies a partial update. When
// the login changes, its uniqueness is re-checked excluding the record's own
// id. It reports false when no row changed, which covers both a missing
// record and an empty request body.
func (s *UserService) Update(ctx context.Context, id string, req model.UpdateUserRequest) (bool, error) {
	if !validation.Required(validation.UserID, id) {
		return false, ErrInvalidUserID
	}
	id = strings.ToLower(id)

	// An empty supplied value counts as "not supplied".
	req.Nom = dropEmpty(req.Nom)
	req.Prenom = dropEmpty(req.Prenom)
	req.Login = dropEmpty(req.Login)
	req.Pass = dropEmpty(req.Pass)

	if req.Nom != nil && !validation.Required(validation.Name, *req.Nom) {
		return false, ErrLastNameInvalid
	}
	if req.Prenom != nil && !validation.Required(validation.Name, *req.Prenom) {
		return false, ErrFirstNameInvalid
	}
	if req.Login != nil && !validation.Required(validation.Login, *req.Login) {
		return false, ErrLoginInvalid
	}
	if req.Pass != nil && !validation.Required(validation.Password, *req.Pass) {
		return false, ErrPasswordInvalid
	}

	if req.Login != nil {
		taken, err := s.repo.LoginExists(ctx, *req.Login, id)
		if err != nil {
			return false, err
		}
		if taken {
			return false, ErrLoginTaken
		}
	}

	if req.Pass != nil {
		hash, err := crypto.HashPassword(*req.Pass)
		if err != nil {
			return false, err
		}
		req.Pass = &hash
	}

	affected, err := s.repo.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateLogin) {
			return false, ErrLoginTaken
		}
		return false, err
	}

	return affected == 1, nil
}

// Delete removes a user. It reports false when no row matched.
func (s *UserService) Delete(ctx context.Context, id string) (bool, error) {
	if !validation.Required(validation.UserID, id) {
		return false, ErrInvalidUserID
	}

	affected, err := s.repo.Delete(ctx, strings.ToLower(id))
	if err != nil {
		return false, err
	}

	return affected == 1, nil
}

// CheckLogin reports whether a login is still available.
func (s *UserService) CheckLogin(ctx context.Context, login string) (bool, error) {
	if !validation.Required(validation.Login, login) {
		return false, ErrLoginInvalid
	}

	taken, err := s.repo.LoginExists(ctx, login, "")
	if err != nil {
		return false, err
	}

	return !taken, nil
}

// Authenticate verifies credentials and returns the public user fields plus
// a signed session token.
func (s *UserService) Authenticate(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	if !validation.Required(validation.Login, req.Login) {
		return model.LoginResponse{}, ErrLoginInvalid
	}
	if req.Pass == "" {
		return model.LoginResponse{}, ErrPasswordRequired
	}

	user, err := s.repo.GetByLogin(ctx, req.Login)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.LoginResponse{}, ErrUserNotFound
		}
		return model.LoginResponse{}, err
	}

	match, err := crypto.VerifyPassword(req.Pass, user.PassHash)
	if err != nil {
		return model.LoginResponse{}, err
	}
	if !match {
		return model.LoginResponse{}, ErrWrongPassword
	}

	token, err := crypto.GenerateToken(user.ID, user.Login, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.LoginResponse{}, err
	}

	return model.LoginResponse{
		ID:     user.ID,
		Nom:    user.Nom,
		Prenom: user.Prenom,
		Login:  user.Login,
		Token:  token,
	}, nil
}

func toUserResponse(u *model.User) model.UserResponse {
	return model.UserResponse{
		ID:     u.ID,
		Nom:    u.Nom,
		Prenom: u.Prenom,
		Login:  u.Login,
	}
}

// usersToResponse strips the password hash from every record and never
// returns a nil slice.
func usersToResponse(users []model.User) []model.UserResponse {
	result := make([]model.UserResponse, len(users))
	for i, u := range users {
		result[i] = toUserResponse(&u)
	}
	return result
}

func dropEmpty(s *string) *string {
	if s != nil && *s == "" {
		return nil
	}
	return s
}

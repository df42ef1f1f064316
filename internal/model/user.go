package model

// User represents a user in the database. The ID is a UUID v4 generated by
// the service at signup, not by the store. PassHash is the Argon2id encoding
// of the password and never leaves the repository/service layers.
type User struct {
	ID       string
	Nom      string
	Prenom   string
	Login    string
	PassHash string
}

// CreateUserRequest represents a signup request.
type CreateUserRequest struct {
	Nom    string `json:"nom"`
	Prenom string `json:"prenom"`
	Login  string `json:"login"`
	Pass   string `json:"pass"`
}

// UpdateUserRequest represents a partial user update. Absent fields are left
// unchanged by the store.
type UpdateUserRequest struct {
	Nom    *string `json:"nom"`
	Prenom *string `json:"prenom"`
	Login  *string `json:"login"`
	Pass   *string `json:"pass"`
}

// LoginRequest represents an authentication request.
type LoginRequest struct {
	Login string `json:"login"`
	Pass  string `json:"pass"`
}

// UserResponse represents user data safe for API responses: every user field
// except the password.
type UserResponse struct {
	ID     string `json:"id"`
	Nom    string `json:"nom"`
	Prenom string `json:"prenom"`
	Login  string `json:"login"`
}

// LoginResponse is the successful authentication payload: the public user
// fields plus a signed session token.
type LoginResponse struct {
	ID     string `json:"id"`
	Nom    string `json:"nom"`
	Prenom string `json:"prenom"`
	Login  string `json:"login"`
	Token  string `json:"token"`
}

// AvailabilityResponse is the login availability payload.
type AvailabilityResponse struct {
	Available bool `json:"available"`
}

package model

import "time"

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Bio          string
	CreatedAt    time.Time
}

// PublicUser is the client-facing view of a User. It never carries the
// password hash.
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthUser is the identity resolved from a bearer token, attached to the
// request context by the auth middleware.
type AuthUser struct {
	ID    string
	Email string
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt,
	}
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Name *string `json:"name"`
	Bio  *string `json:"bio"`
}

package models

import "time"

// User represents a user in the system. PasswordHash is nil for accounts
// created through Google sign-in that never set a local password.
type User struct {
	ID            string     `json:"id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	PasswordHash  *string    `json:"-"` // Not serialized
	GoogleID      *string    `json:"-"`
	GoogleName    *string    `json:"googleName,omitempty"`
	GooglePicture *string    `json:"googlePicture,omitempty"`
	LastLogin     *time.Time `json:"lastLogin,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// HasPassword reports whether the account can sign in with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Email    string `json:"email" validate:"required,email,max=255"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by every successful sign-in.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// GoogleProfile is the identity extracted from a verified Google token.
type GoogleProfile struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

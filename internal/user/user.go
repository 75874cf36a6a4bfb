package user

import (
	"errors"
	"time"
)

var (
	// ErrMissingField is wrapped by every required-field error.
	ErrMissingField       = errors.New("missing field")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUsernameRequired error = &MissingFieldError{Field: "Username"}
	ErrPasswordRequired error = &MissingFieldError{Field: "Password"}
)

// MissingFieldError reports a required request field that was absent or empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return e.Field + " is required"
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

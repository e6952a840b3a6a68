package domain

import "errors"

var (
	// auth
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingToken       = errors.New("missing token")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("admin rights required")

	// resources
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

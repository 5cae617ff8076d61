package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("Invalid name or password")
	ErrInvalidToken       = errors.New("Invalid or expired token")
)

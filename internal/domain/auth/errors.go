package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingToken       = errors.New("login response carried no token")
)

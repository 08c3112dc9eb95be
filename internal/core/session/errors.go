package session

import "errors"

var (
	ErrInvalidCredentials = errors.New("session: invalid email or password")
	ErrNoSession          = errors.New("session: no active session")
	ErrInvalidAccount     = errors.New("session: invalid account")
	ErrDuplicateAccount   = errors.New("session: duplicate account email")
	ErrMissingSecret      = errors.New("session: signing secret is required")
)

package domain

import "errors"

var (
	ErrSecretNotFound   = errors.New("secret not found")
	ErrIdentityNotFound = errors.New("identity not found")
	ErrNotLoggedIn      = errors.New("not logged in")
	ErrSessionExpired   = errors.New("session expired")
	ErrForbiddenRole    = errors.New("role not allowed for this operation")
)

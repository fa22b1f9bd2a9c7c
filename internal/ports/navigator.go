package ports

import "context"

// Navigator moves the user to the login entry point after the session is dropped.
type Navigator interface {
	RedirectToLogin(ctx context.Context) error
}

package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/klinik-cli/internal/domain"
	"github.com/bnema/klinik-cli/internal/ports"
)

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrMissingEmail       = errors.New("email is required")
	ErrEmptyToken         = errors.New("login response carried no token")
)

// SessionInvalidator drops the stored session and sends the user back to the
// login entry point. The gateway calls it on every 401.
type SessionInvalidator struct {
	store     ports.SessionStore
	navigator ports.Navigator
}

func NewSessionInvalidator(store ports.SessionStore, navigator ports.Navigator) *SessionInvalidator {
	return &SessionInvalidator{store: store, navigator: navigator}
}

// Invalidate clears the session and redirects even when clearing fails.
func (i *SessionInvalidator) Invalidate(ctx context.Context) error {
	var errs []error
	if err := i.store.Clear(ctx); err != nil {
		errs = append(errs, fmt.Errorf("clear session: %w", err))
	}
	if i.navigator != nil {
		if err := i.navigator.RedirectToLogin(ctx); err != nil {
			errs = append(errs, fmt.Errorf("redirect to login: %w", err))
		}
	}

	return errors.Join(errs...)
}

type SessionService struct {
	auth        ports.AuthAPI
	store       ports.SessionStore
	invalidator *SessionInvalidator
	clock       ports.Clock
}

func NewSessionService(auth ports.AuthAPI, store ports.SessionStore, invalidator *SessionInvalidator, clock ports.Clock) *SessionService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if invalidator == nil {
		invalidator = NewSessionInvalidator(store, nil)
	}

	return &SessionService{
		auth:        auth,
		store:       store,
		invalidator: invalidator,
		clock:       clock,
	}
}

func (s *SessionService) Login(ctx context.Context, username, password string) (domain.Identity, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.Identity{}, ErrMissingCredentials
	}

	result, err := s.auth.Login(ctx, username, password)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("login: %w", err)
	}
	if strings.TrimSpace(result.Token) == "" {
		return domain.Identity{}, ErrEmptyToken
	}

	identity := result.Identity()
	if identity.Username == "" {
		identity.Username = username
	}
	identity.LoggedInAt = s.clock.Now()

	if err := s.store.Save(ctx, result.Token, identity); err != nil {
		return domain.Identity{}, fmt.Errorf("save session: %w", err)
	}

	return identity, nil
}

// Logout clears the stored session. Logging out twice is not an error.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	return nil
}

func (s *SessionService) Current(ctx context.Context) (domain.Identity, error) {
	identity, err := s.store.Identity(ctx)
	if err != nil {
		return domain.Identity{}, err
	}

	return identity, nil
}

func (s *SessionService) Invalidate(ctx context.Context) error {
	return s.invalidator.Invalidate(ctx)
}

func (s *SessionService) ResetPassword(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", ErrMissingEmail
	}

	message, err := s.auth.ResetPassword(ctx, email)
	if err != nil {
		return "", fmt.Errorf("reset password: %w", err)
	}

	return message, nil
}

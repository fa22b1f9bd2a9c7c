// Package session keeps the bearer token in a secret store and the identity
// record beside it, and clears both together.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/klinik-cli/internal/domain"
	"github.com/bnema/klinik-cli/internal/ports"
)

const TokenKey = "klinik/session/token"

type Store struct {
	secrets    ports.SecretStore
	identities ports.IdentityRepository
}

var _ ports.SessionStore = (*Store)(nil)

func NewStore(secrets ports.SecretStore, identities ports.IdentityRepository) *Store {
	return &Store{secrets: secrets, identities: identities}
}

// Token returns "" when no session is stored.
func (s *Store) Token(ctx context.Context) (string, error) {
	token, err := s.secrets.Get(ctx, TokenKey)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("read session token: %w", err)
	}

	return token, nil
}

func (s *Store) Identity(ctx context.Context) (domain.Identity, error) {
	identity, err := s.identities.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return domain.Identity{}, domain.ErrNotLoggedIn
		}
		return domain.Identity{}, fmt.Errorf("read session identity: %w", err)
	}

	return identity, nil
}

func (s *Store) Save(ctx context.Context, token string, identity domain.Identity) error {
	if token == "" {
		return errors.New("session token is empty")
	}

	if err := s.secrets.Put(ctx, TokenKey, token); err != nil {
		return fmt.Errorf("store session token: %w", err)
	}

	if err := s.identities.Save(ctx, identity); err != nil {
		saveErr := fmt.Errorf("store session identity: %w", err)
		if rollbackErr := s.secrets.Delete(ctx, TokenKey); rollbackErr != nil {
			return errors.Join(saveErr, fmt.Errorf("rollback session token: %w", rollbackErr))
		}
		return saveErr
	}

	return nil
}

// Clear removes the token and the identity. Both are attempted even when one
// fails, and clearing an empty session succeeds.
func (s *Store) Clear(ctx context.Context) error {
	var errs []error
	if err := s.secrets.Delete(ctx, TokenKey); err != nil {
		errs = append(errs, fmt.Errorf("clear session token: %w", err))
	}
	if err := s.identities.Delete(ctx); err != nil {
		errs = append(errs, fmt.Errorf("clear session identity: %w", err))
	}

	return errors.Join(errs...)
}

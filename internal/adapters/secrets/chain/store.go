package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/klinik-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/klinik-cli/internal/adapters/secrets/pass"
	"github.com/bnema/klinik-cli/internal/domain"
	"github.com/bnema/klinik-cli/internal/ports"
)

// Store writes to primary and falls back to the second backend when primary
// fails. Reads consult both, and deletes must clear both.
type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary secret store is nil")
	errNilFallbackStore = errors.New("fallback secret store is nil")
)

func NewStore(primary ports.SecretStore, fallback ports.SecretStore) *Store {
	store, err := NewStoreChecked(primary, fallback)
	if err != nil {
		panic(err)
	}

	return store
}

func NewStoreChecked(primary ports.SecretStore, fallback ports.SecretStore) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback}, nil
}

func NewPassFirstWithFileFallback(fileRoot string) (*Store, error) {
	return NewStoreChecked(passstore.NewStore(), filestore.NewStore(fileRoot))
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil {
		return nil
	}
	if isContextError(err) {
		return err
	}

	fallbackErr := s.fallback.Put(ctx, key, value)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend put failed: %w; fallback backend put failed: %w", err, fallbackErr)
}

// Get returns domain.ErrSecretNotFound only when neither backend holds key
// and neither failed for another reason.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if isContextError(err) {
		return "", err
	}

	fallbackValue, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr == nil {
		return fallbackValue, nil
	}
	if isNotFound(fallbackErr) && (isNotFound(err) || errors.Is(err, passstore.ErrUnavailable)) {
		return "", fmt.Errorf("secret %q: %w", key, domain.ErrSecretNotFound)
	}

	return "", fmt.Errorf("primary backend get failed: %w; fallback backend get failed: %w", err, fallbackErr)
}

// Delete clears key from both backends. Either backend failing for a reason
// other than being unavailable or not holding key fails the delete.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.primary.Delete(ctx, key)
	if isContextError(err) {
		return err
	}

	fallbackErr := s.fallback.Delete(ctx, key)
	if isContextError(fallbackErr) {
		return fallbackErr
	}

	var errs []error
	if !isCleared(err) {
		errs = append(errs, fmt.Errorf("primary backend delete failed: %w", err))
	}
	if !isCleared(fallbackErr) {
		errs = append(errs, fmt.Errorf("fallback backend delete failed: %w", fallbackErr))
	}

	return errors.Join(errs...)
}

// isCleared reports whether a backend delete leaves no readable copy behind.
func isCleared(err error) bool {
	return err == nil || isNotFound(err) || errors.Is(err, passstore.ErrUnavailable)
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrSecretNotFound)
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

package ports

import "context"

// SecretStore reports a missing key from Get as domain.ErrSecretNotFound.
// Delete of a missing key succeeds.
type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

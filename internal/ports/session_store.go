package ports

import (
	"context"

	"github.com/bnema/klinik-cli/internal/domain"
)

// SessionStore owns the persisted session: the bearer token and the identity
// record written next to it. Clear removes both and is a no-op when empty.
type SessionStore interface {
	Token(ctx context.Context) (string, error)
	Identity(ctx context.Context) (domain.Identity, error)
	Save(ctx context.Context, token string, identity domain.Identity) error
	Clear(ctx context.Context) error
}

type IdentityRepository interface {
	Get(ctx context.Context) (domain.Identity, error)
	Save(ctx context.Context, identity domain.Identity) error
	Delete(ctx context.Context) error
}

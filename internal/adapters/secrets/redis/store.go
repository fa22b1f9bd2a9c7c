// Package redis keeps secrets in a shared Redis instance so several terminals
// can reuse one clinic session.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/bnema/klinik-cli/internal/domain"
	"github.com/bnema/klinik-cli/internal/ports"
)

const defaultPrefix = "klinik:"

// Commands is the subset of the go-redis client the store uses.
type Commands interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

type Store struct {
	client Commands
	prefix string
	ttl    time.Duration
}

var _ ports.SecretStore = (*Store)(nil)

type Option func(*Store)

// WithTTL expires stored secrets after ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

func NewStore(client Commands, opts ...Option) *Store {
	s := &Store{client: client, prefix: defaultPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dial connects to addr and verifies the server answers.
func Dial(ctx context.Context, addr string, db int, opts ...Option) (*Store, func() error, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}

	return NewStore(client, opts...), client.Close, nil
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	redisKey, err := s.keyFor(key)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, redisKey, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis put %q: %w", key, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	redisKey, err := s.keyFor(key)
	if err != nil {
		return "", err
	}

	value, err := s.client.Get(ctx, redisKey).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", fmt.Errorf("redis get %q: %w", key, domain.ErrSecretNotFound)
		}
		return "", fmt.Errorf("redis get %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	redisKey, err := s.keyFor(key)
	if err != nil {
		return err
	}

	if err := s.client.Del(ctx, redisKey).Err(); err != nil {
		return fmt.Errorf("redis delete %q: %w", key, err)
	}
	return nil
}

func (s *Store) keyFor(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", errors.New("secret key is empty")
	}
	return s.prefix + strings.ReplaceAll(trimmed, "/", ":"), nil
}

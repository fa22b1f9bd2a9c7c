package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/klinik-cli/internal/domain"
)

const tokenKey = "klinik/session/token"

type fakeCommands struct {
	values  map[string]string
	ttls    map[string]time.Duration
	failErr error
}

func newFakeCommands() *fakeCommands {
	return &fakeCommands{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeCommands) Get(_ context.Context, key string) *goredis.StringCmd {
	if f.failErr != nil {
		return goredis.NewStringResult("", f.failErr)
	}
	value, ok := f.values[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(value, nil)
}

func (f *fakeCommands) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd {
	if f.failErr != nil {
		return goredis.NewStatusResult("", f.failErr)
	}
	f.values[key] = value.(string)
	f.ttls[key] = expiration
	return goredis.NewStatusResult("OK", nil)
}

func (f *fakeCommands) Del(_ context.Context, keys ...string) *goredis.IntCmd {
	if f.failErr != nil {
		return goredis.NewIntResult(0, f.failErr)
	}
	var removed int64
	for _, key := range keys {
		if _, ok := f.values[key]; ok {
			delete(f.values, key)
			removed++
		}
	}
	return goredis.NewIntResult(removed, nil)
}

func TestStorePutGetDelete(t *testing.T) {
	t.Parallel()

	commands := newFakeCommands()
	store := NewStore(commands, WithTTL(12*time.Hour))

	require.NoError(t, store.Put(context.Background(), tokenKey, "jwt"))
	assert.Equal(t, "jwt", commands.values["klinik:klinik:session:token"])
	assert.Equal(t, 12*time.Hour, commands.ttls["klinik:klinik:session:token"])

	value, err := store.Get(context.Background(), tokenKey)
	require.NoError(t, err)
	assert.Equal(t, "jwt", value)

	require.NoError(t, store.Delete(context.Background(), tokenKey))
	require.NoError(t, store.Delete(context.Background(), tokenKey))

	_, err = store.Get(context.Background(), tokenKey)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreUsesPrefix(t *testing.T) {
	t.Parallel()

	commands := newFakeCommands()
	store := NewStore(commands, WithPrefix("clinic-a:"))

	require.NoError(t, store.Put(context.Background(), tokenKey, "jwt"))
	assert.Contains(t, commands.values, "clinic-a:klinik:session:token")
}

func TestStoreWrapsBackendErrors(t *testing.T) {
	t.Parallel()

	commands := newFakeCommands()
	commands.failErr = errors.New("connection refused")
	store := NewStore(commands)

	_, err := store.Get(context.Background(), tokenKey)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, "connection refused")

	assert.ErrorContains(t, store.Put(context.Background(), tokenKey, "jwt"), "redis put")
	assert.ErrorContains(t, store.Delete(context.Background(), tokenKey), "redis delete")
}

func TestStoreRejectsEmptyKey(t *testing.T) {
	t.Parallel()

	store := NewStore(newFakeCommands())
	assert.ErrorContains(t, store.Put(context.Background(), " ", "jwt"), "secret key is empty")
}

package chain

import (
	"context"
	"errors"
	"testing"

	passstore "github.com/bnema/klinik-cli/internal/adapters/secrets/pass"
	"github.com/bnema/klinik-cli/internal/domain"
	portmocks "github.com/bnema/klinik-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const tokenKey = "klinik/session/token"

func newMocks(t *testing.T) (*portmocks.MockSecretStore, *portmocks.MockSecretStore, *Store) {
	t.Helper()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	return primary, fallback, NewStore(primary, fallback)
}

func TestStoreGetUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	primary, _, store := newMocks(t)
	primary.EXPECT().Get(mock.Anything, tokenKey).Return("from-pass", nil).Once()

	value, err := store.Get(context.Background(), tokenKey)
	require.NoError(t, err)
	assert.Equal(t, "from-pass", value)
}

func TestStoreGetFallsBackWhenPrimaryMisses(t *testing.T) {
	t.Parallel()

	primary, fallback, store := newMocks(t)
	primary.EXPECT().Get(mock.Anything, tokenKey).Return("", domain.ErrSecretNotFound).Once()
	fallback.EXPECT().Get(mock.Anything, tokenKey).Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), tokenKey)
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreGetReturnsNotFoundWhenNeitherBackendHasKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		primaryErr error
	}{
		{name: "primary missing", primaryErr: domain.ErrSecretNotFound},
		{name: "primary unavailable", primaryErr: passstore.ErrUnavailable},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			primary, fallback, store := newMocks(t)
			primary.EXPECT().Get(mock.Anything, tokenKey).Return("", tc.primaryErr).Once()
			fallback.EXPECT().Get(mock.Anything, tokenKey).Return("", domain.ErrSecretNotFound).Once()

			_, err := store.Get(context.Background(), tokenKey)
			require.ErrorIs(t, err, domain.ErrSecretNotFound)
		})
	}
}

func TestStoreGetReturnsCombinedErrorWhenBothBackendsFail(t *testing.T) {
	t.Parallel()

	primary, fallback, store := newMocks(t)
	primary.EXPECT().Get(mock.Anything, tokenKey).Return("", errors.New("gpg failed")).Once()
	fallback.EXPECT().Get(mock.Anything, tokenKey).Return("", errors.New("permission denied")).Once()

	_, err := store.Get(context.Background(), tokenKey)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, "gpg failed")
	assert.ErrorContains(t, err, "permission denied")
}

func TestStoreGetDoesNotFallbackOnCanceledContext(t *testing.T) {
	t.Parallel()

	primary, _, store := newMocks(t)
	primary.EXPECT().Get(mock.Anything, tokenKey).Return("", context.Canceled).Once()

	_, err := store.Get(context.Background(), tokenKey)
	require.ErrorIs(t, err, context.Canceled)
}

func TestStorePutFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary, fallback, store := newMocks(t)
	primary.EXPECT().Put(mock.Anything, tokenKey, "jwt").Return(passstore.ErrUnavailable).Once()
	fallback.EXPECT().Put(mock.Anything, tokenKey, "jwt").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), tokenKey, "jwt"))
}

func TestStorePutDoesNotCallFallbackWhenPrimarySucceeds(t *testing.T) {
	t.Parallel()

	primary, _, store := newMocks(t)
	primary.EXPECT().Put(mock.Anything, tokenKey, "jwt").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), tokenKey, "jwt"))
}

func TestStoreDeleteClearsBothBackends(t *testing.T) {
	t.Parallel()

	primary, fallback, store := newMocks(t)
	primary.EXPECT().Delete(mock.Anything, tokenKey).Return(nil).Once()
	fallback.EXPECT().Delete(mock.Anything, tokenKey).Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), tokenKey))
}

func TestStoreDeleteToleratesUnavailableOrMissingBackend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		primaryErr  error
		fallbackErr error
	}{
		{name: "pass unavailable, file cleared", primaryErr: passstore.ErrUnavailable},
		{name: "pass cleared, file missing", fallbackErr: domain.ErrSecretNotFound},
		{name: "pass unavailable, file missing", primaryErr: passstore.ErrUnavailable, fallbackErr: domain.ErrSecretNotFound},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			primary, fallback, store := newMocks(t)
			primary.EXPECT().Delete(mock.Anything, tokenKey).Return(tc.primaryErr).Once()
			fallback.EXPECT().Delete(mock.Anything, tokenKey).Return(tc.fallbackErr).Once()

			require.NoError(t, store.Delete(context.Background(), tokenKey))
		})
	}
}

func TestStoreDeleteFailsWhenFallbackKeepsToken(t *testing.T) {
	t.Parallel()

	primary, fallback, store := newMocks(t)
	primary.EXPECT().Delete(mock.Anything, tokenKey).Return(nil).Once()
	fallback.EXPECT().Delete(mock.Anything, tokenKey).Return(errors.New("permission denied")).Once()
	fallback.EXPECT().Get(mock.Anything, tokenKey).Return("stale-jwt", nil).Maybe()
	primary.EXPECT().Get(mock.Anything, tokenKey).Return("", domain.ErrSecretNotFound).Maybe()

	err := store.Delete(context.Background(), tokenKey)
	require.Error(t, err)
	assert.ErrorContains(t, err, "fallback backend delete failed")
	assert.ErrorContains(t, err, "permission denied")
	assert.NotContains(t, err.Error(), "primary backend delete failed")

	value, getErr := store.Get(context.Background(), tokenKey)
	require.NoError(t, getErr)
	assert.Equal(t, "stale-jwt", value, "a failed delete must be reported while the token is still readable")
}

func TestStoreDeleteFailsWhenPrimaryKeepsToken(t *testing.T) {
	t.Parallel()

	primary, fallback, store := newMocks(t)
	primary.EXPECT().Delete(mock.Anything, tokenKey).Return(errors.New("gpg failed")).Once()
	fallback.EXPECT().Delete(mock.Anything, tokenKey).Return(nil).Once()

	err := store.Delete(context.Background(), tokenKey)
	require.Error(t, err)
	assert.ErrorContains(t, err, "primary backend delete failed")
}

func TestStoreDeleteFailsWhenBothBackendsFail(t *testing.T) {
	t.Parallel()

	primary, fallback, store := newMocks(t)
	primary.EXPECT().Delete(mock.Anything, tokenKey).Return(errors.New("pass failed")).Once()
	fallback.EXPECT().Delete(mock.Anything, tokenKey).Return(errors.New("file failed")).Once()

	err := store.Delete(context.Background(), tokenKey)
	require.Error(t, err)
	assert.ErrorContains(t, err, "primary backend delete failed")
	assert.ErrorContains(t, err, "fallback backend delete failed")
}

func TestStoreDeleteStopsOnCanceledContext(t *testing.T) {
	t.Parallel()

	primary, _, store := newMocks(t)
	primary.EXPECT().Delete(mock.Anything, tokenKey).Return(context.Canceled).Once()

	require.ErrorIs(t, store.Delete(context.Background(), tokenKey), context.Canceled)
}

func TestNewStoreCheckedRejectsNilBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStoreChecked(nil, portmocks.NewMockSecretStore(t))
	require.ErrorIs(t, err, errNilPrimaryStore)

	_, err = NewStoreChecked(portmocks.NewMockSecretStore(t), nil)
	require.ErrorIs(t, err, errNilFallbackStore)
}

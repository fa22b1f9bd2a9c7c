package toml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/klinik-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, path string) *IdentityRepository {
	t.Helper()

	repo, err := NewIdentityRepository(path)
	require.NoError(t, err)
	return repo
}

func TestIdentityRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), SessionFileName))
	identity := domain.Identity{
		Username:   "dr.yilmaz",
		Role:       domain.RoleDoctor,
		UserID:     7,
		LoggedInAt: time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
	}

	require.NoError(t, repo.Save(context.Background(), identity))

	got, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, identity, got)
}

func TestIdentityRepositorySaveReplacesPreviousIdentity(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), SessionFileName))

	require.NoError(t, repo.Save(context.Background(), domain.Identity{Username: "admin", Role: domain.RoleAdmin, UserID: 1}))
	require.NoError(t, repo.Save(context.Background(), domain.Identity{Username: "dr.kaya", Role: domain.RoleDoctor, UserID: 3}))

	got, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "dr.kaya", got.Username)
	assert.Equal(t, int64(3), got.UserID)
}

func TestIdentityRepositoryMissingFileReturnsNotFound(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "missing", SessionFileName))

	_, err := repo.Get(context.Background())
	require.ErrorIs(t, err, domain.ErrIdentityNotFound)
}

func TestIdentityRepositoryDeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), SessionFileName)
	repo := newTestRepository(t, path)
	require.NoError(t, repo.Save(context.Background(), domain.Identity{Username: "admin", Role: domain.RoleAdmin}))

	require.NoError(t, repo.Delete(context.Background()))
	require.NoError(t, repo.Delete(context.Background()))

	_, err := os.Stat(path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	_, err = repo.Get(context.Background())
	require.ErrorIs(t, err, domain.ErrIdentityNotFound)
}

func TestIdentityRepositorySaveCreatesDirectoryAndEnforcesPermissions(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".klinik", SessionFileName)
	repo := newTestRepository(t, path)

	require.NoError(t, repo.Save(context.Background(), domain.Identity{Username: "admin", Role: domain.RoleAdmin}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(sessionFileMode), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "admin")
}

func TestIdentityRepositoryMalformedTOMLReturnsError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), SessionFileName)
	require.NoError(t, os.WriteFile(path, []byte("identity = ["), 0o600))

	_, err := newTestRepository(t, path).Get(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode session file")
}

func TestIdentityRepositoryFutureSchemaVersionReturnsError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), SessionFileName)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join([]string{
		"version = 999",
		"",
		"[identity]",
		"username = \"admin\"",
		"",
	}, "\n")), 0o600))

	_, err := newTestRepository(t, path).Get(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported session schema version")
}

func TestIdentityRepositoryReadsHandWrittenFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), SessionFileName)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join([]string{
		"[identity]",
		"username = \"admin\"",
		"role = \"ROLE_ADMIN\"",
		"user_id = 1",
		"logged_in_at = \"not-a-time\"",
		"",
	}, "\n")), 0o600))

	got, err := newTestRepository(t, path).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Identity{Username: "admin", Role: domain.RoleAdmin, UserID: 1}, got)
}

func TestIdentityRepositoryCanceledContext(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), SessionFileName))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, repo.Save(ctx, domain.Identity{Username: "admin"}), context.Canceled)
	_, err := repo.Get(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, repo.Delete(ctx), context.Canceled)
}

func TestIdentityRepositoryConcurrentAccessAcrossInstances(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), SessionFileName)
	repoA := newTestRepository(t, path)
	repoB := newTestRepository(t, path)

	const writes = 50
	start := make(chan struct{})
	errCh := make(chan error, writes*2)
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		<-start
		for i := 0; i < writes; i++ {
			errCh <- repoA.Save(context.Background(), domain.Identity{Username: "a", Role: domain.RoleAdmin})
		}
	}()

	go func() {
		defer wg.Done()
		<-start
		for i := 0; i < writes; i++ {
			if _, err := repoB.Get(context.Background()); err != nil && !errors.Is(err, domain.ErrIdentityNotFound) {
				errCh <- err
			}
			errCh <- repoB.Delete(context.Background())
		}
	}()

	close(start)
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}
}

func TestNewIdentityRepositoryRejectsEmptyPath(t *testing.T) {
	t.Parallel()

	_, err := NewIdentityRepository("")
	require.Error(t, err)
}

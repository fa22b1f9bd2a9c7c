package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/klinik-cli/internal/domain"
	"github.com/bnema/klinik-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	sessionFileMode = 0o600
	sessionDirMode  = 0o700
	SessionFileName = "session.toml"
	tempFilePattern = ".session-*.toml.tmp"
)

// IdentityRepository persists the logged-in user next to the session token.
type IdentityRepository struct {
	path string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.IdentityRepository = (*IdentityRepository)(nil)

func NewIdentityRepository(path string) (*IdentityRepository, error) {
	if path == "" {
		return nil, errors.New("session file path is empty")
	}

	normalized, err := normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &IdentityRepository{path: normalized, mu: lockForPath(normalized)}, nil
}

func (r *IdentityRepository) Path() string {
	return r.path
}

func (r *IdentityRepository) Get(ctx context.Context) (domain.Identity, error) {
	if err := ctx.Err(); err != nil {
		return domain.Identity{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Identity{}, err
	}
	if file.Identity == nil {
		return domain.Identity{}, domain.ErrIdentityNotFound
	}

	return fromSchema(*file.Identity), nil
}

func (r *IdentityRepository) Save(ctx context.Context, identity domain.Identity) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	encoded := toSchema(identity)
	return r.writeSchema(sessionFileSchema{Identity: &encoded})
}

// Delete removes the session file. A missing file is not an error.
func (r *IdentityRepository) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete session file: %w", err)
	}

	return nil
}

func (r *IdentityRepository) readSchema() (sessionFileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return sessionFileSchema{}, nil
		}
		return sessionFileSchema{}, fmt.Errorf("read session file: %w", err)
	}

	var file sessionFileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return sessionFileSchema{}, fmt.Errorf("decode session file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return sessionFileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *IdentityRepository) writeSchema(file sessionFileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.path), sessionDirMode); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if err := tempFile.Chmod(sessionFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp session file: %w", err)
	}

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp session file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp session file: %w", err)
	}

	if err := os.Rename(tempName, r.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	cleanup = false

	return nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve session path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

// lockForPath shares one mutex between repositories pointing at the same file.
func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func toSchema(identity domain.Identity) identitySchema {
	return identitySchema{
		Username:   identity.Username,
		Role:       string(identity.Role),
		UserID:     identity.UserID,
		LoggedInAt: formatTime(identity.LoggedInAt),
	}
}

func fromSchema(entry identitySchema) domain.Identity {
	return domain.Identity{
		Username:   entry.Username,
		Role:       domain.Role(entry.Role),
		UserID:     entry.UserID,
		LoggedInAt: parseTime(entry.LoggedInAt),
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}

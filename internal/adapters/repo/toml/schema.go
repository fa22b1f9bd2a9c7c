package toml

import "fmt"

const currentSchemaVersion = 1

type sessionFileSchema struct {
	Version  int             `toml:"version"`
	Identity *identitySchema `toml:"identity,omitempty"`
}

func (s *sessionFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s sessionFileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported session schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type identitySchema struct {
	Username   string `toml:"username"`
	Role       string `toml:"role"`
	UserID     int64  `toml:"user_id"`
	LoggedInAt string `toml:"logged_in_at,omitempty"`
}

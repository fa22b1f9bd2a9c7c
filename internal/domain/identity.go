package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin  Role = "ROLE_ADMIN"
	RoleDoctor Role = "ROLE_DOCTOR"
)

func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleDoctor:
		return "doctor"
	case "":
		return "patient"
	default:
		return strings.ToLower(strings.TrimPrefix(string(r), "ROLE_"))
	}
}

// Identity is the minimal user record kept next to the session token.
type Identity struct {
	Username string
	Role     Role
	UserID   int64

	// LoggedInAt is stamped locally when the token is stored.
	LoggedInAt time.Time
}

func (i Identity) IsZero() bool {
	return i.Username == "" && i.Role == "" && i.UserID == 0
}

func (i Identity) HasRole(role Role) bool {
	return i.Role == role
}

type LoginResult struct {
	Token    string `json:"token"`
	Type     string `json:"type,omitempty"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	UserID   int64  `json:"userId"`
}

func (r LoginResult) Identity() Identity {
	return Identity{Username: r.Username, Role: r.Role, UserID: r.UserID}
}

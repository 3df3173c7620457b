// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Roles recognized by the gateway.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// ValidRole reports whether role belongs to the enumerated set.
func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// Account represents a registered user stored in the record store.
// PwdHash and Salt never leave the service layer.
type Account struct {
	ID        uuid.UUID // PK, server-generated
	Email     string    // unique
	PwdHash   []byte    // Argon2id(password, Salt)
	Salt      []byte    // per-account auth salt
	Role      string    // one of RoleStudent/RoleTeacher/RoleAdmin
	CreatedAt time.Time
}

// Sanitized returns the caller-visible view of the account.
func (a *Account) Sanitized() SanitizedAccount {
	return SanitizedAccount{ID: a.ID, Email: a.Email, Role: a.Role}
}

// SanitizedAccount is the account shape returned to callers: no hash, no salt.
type SanitizedAccount struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

// Session is an issued token with its expiry (expiry for diagnostics only,
// the token itself is self-describing).
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// StorageObject describes an uploaded file as seen by callers. Key is the
// internal bucket key; handlers expose Name/URL/Size/CreatedAt only.
type StorageObject struct {
	Name        string // original, human-facing file name
	Key         string // bucket key, implementation detail
	ContentType string
	Size        int64
	CreatedAt   time.Time
	URL         string // public URL, recomputed on every read
}

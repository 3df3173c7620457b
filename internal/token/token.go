// Package token issues and verifies signed session tokens.
package token

import (
	"time"

	"github.com/and161185/classroom-gateway/internal/errs"
	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the fixed validity window for issued tokens.
const DefaultTTL = 24 * time.Hour

// Claims carried by a session token. Limited to subject and role: the token
// may be logged by intermediaries, so email or other PII never goes in.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Manager signs and verifies HS256 session tokens with a single
// process-wide secret. Safe for concurrent use; the key is immutable after
// construction.
type Manager struct {
	signKey []byte
	ttl     time.Duration
	now     func() time.Time
}

// New constructs a Manager. ttl <= 0 falls back to DefaultTTL.
func New(signKey []byte, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{signKey: signKey, ttl: ttl, now: time.Now}
}

// WithClock overrides the time source. Used by tests to simulate expiry.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Issue creates a signed token for the given subject and role.
func (m *Manager) Issue(subjectID uuid.UUID, role string) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Role: role,
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(m.signKey)
	return signed, exp, err
}

// Verify parses and validates a token, returning the subject and role.
// Malformed, forged, and expired tokens all map to errs.ErrInvalidToken;
// callers get no detail on which check failed.
func (m *Manager) Verify(tokenString string) (uuid.UUID, string, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errs.ErrInvalidToken
		}
		return m.signKey, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !parsed.Valid {
		return uuid.Nil, "", errs.ErrInvalidToken
	}
	id, err := uuid.FromString(claims.Subject)
	if err != nil {
		return uuid.Nil, "", errs.ErrInvalidToken
	}
	return id, claims.Role, nil
}

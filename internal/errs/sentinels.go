// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrInvalidInput indicates missing or malformed client input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates failed authentication. Missing account and
	// wrong password collapse into this one sentinel on purpose.
	ErrUnauthorized = errors.New("invalid credentials")

	// ErrInvalidToken indicates a malformed, forged, or expired session token.
	ErrInvalidToken = errors.New("invalid token")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., email taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUpstream indicates a store or bucket call failed for reasons
	// unrelated to client input.
	ErrUpstream = errors.New("upstream failure")
)

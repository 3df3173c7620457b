// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/and161185/classroom-gateway/internal/model"
	"github.com/gofrs/uuid/v5"
)

// AccountRepository provides access to registered accounts.
type AccountRepository interface {
	// Create inserts a new account. Returns errs.ErrAlreadyExists when the
	// email is already taken (enforced by the store's unique constraint).
	Create(ctx context.Context, a *model.Account) error
	// GetByID loads an account by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	// GetByEmail loads an account by email.
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
}

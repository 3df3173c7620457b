package postgres

import (
	"context"
	"errors"

	"github.com/and161185/classroom-gateway/internal/errs"
	"github.com/and161185/classroom-gateway/internal/model"
	"github.com/gofrs/uuid/v5"
)

// AccountRepo implements AccountRepository using PostgreSQL.
type AccountRepo struct{ db *DB }

// NewAccountRepo constructs an account repository.
func NewAccountRepo(db *DB) *AccountRepo { return &AccountRepo{db: db} }

// Create inserts a new account row. The unique index on email is the only
// uniqueness check; there is no client-side pre-check.
func (r *AccountRepo) Create(ctx context.Context, a *model.Account) error {
	const q = `
INSERT INTO accounts (id, email, pwd_hash, salt, role)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Pool.Exec(ctx, q, a.ID, a.Email, a.PwdHash, a.Salt, a.Role)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// GetByID selects an account by ID.
func (r *AccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	const q = `
SELECT id, email, pwd_hash, salt, role, created_at
FROM accounts WHERE id=$1`
	row := r.db.Pool.QueryRow(ctx, q, id)
	var a model.Account
	if err := row.Scan(&a.ID, &a.Email, &a.PwdHash, &a.Salt, &a.Role, &a.CreatedAt); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}
	return &a, nil
}

// GetByEmail selects an account by email.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	const q = `
SELECT id, email, pwd_hash, salt, role, created_at
FROM accounts WHERE email=$1`
	row := r.db.Pool.QueryRow(ctx, q, email)
	var a model.Account
	if err := row.Scan(&a.ID, &a.Email, &a.PwdHash, &a.Salt, &a.Role, &a.CreatedAt); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}
	return &a, nil
}

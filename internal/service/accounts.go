// Package service contains application services for credentials and files.
package service

import (
	"context"
	"fmt"
	"regexp"

	pkgcrypto "github.com/and161185/classroom-gateway/internal/crypto"
	"github.com/and161185/classroom-gateway/internal/errs"
	"github.com/and161185/classroom-gateway/internal/model"
	"github.com/and161185/classroom-gateway/internal/repository"
	"github.com/and161185/classroom-gateway/internal/token"
	"github.com/gofrs/uuid/v5"
)

// emailRe checks structural validity before any store round-trip.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AccountService defines the credential lifecycle operations.
type AccountService interface {
	// Register creates a new account with secure password hashing and
	// returns the sanitized account plus a fresh session.
	Register(ctx context.Context, email, password, role string) (model.SanitizedAccount, model.Session, error)
	// Login authenticates by email/password. Missing account and wrong
	// password fail identically.
	Login(ctx context.Context, email, password string) (model.SanitizedAccount, model.Session, error)
}

type AccountServiceImpl struct {
	accounts repository.AccountRepository
	tokens   *token.Manager
}

// NewAccountService constructs AccountService with required dependencies.
func NewAccountService(accounts repository.AccountRepository, tokens *token.Manager) *AccountServiceImpl {
	return &AccountServiceImpl{accounts: accounts, tokens: tokens}
}

// Register creates a new account record. Email uniqueness is enforced by the
// store; a violation surfaces as errs.ErrAlreadyExists with no further detail.
func (s *AccountServiceImpl) Register(ctx context.Context, email, password, role string) (model.SanitizedAccount, model.Session, error) {
	if email == "" || password == "" || role == "" {
		return model.SanitizedAccount{}, model.Session{}, fmt.Errorf("%w: all fields are required", errs.ErrInvalidInput)
	}
	if !emailRe.MatchString(email) {
		return model.SanitizedAccount{}, model.Session{}, fmt.Errorf("%w: malformed email", errs.ErrInvalidInput)
	}
	if !model.ValidRole(role) {
		return model.SanitizedAccount{}, model.Session{}, fmt.Errorf("%w: unknown role", errs.ErrInvalidInput)
	}

	uid, err := uuid.NewV4()
	if err != nil {
		return model.SanitizedAccount{}, model.Session{}, err
	}
	salt, err := pkgcrypto.NewSalt()
	if err != nil {
		return model.SanitizedAccount{}, model.Session{}, err
	}

	a := &model.Account{
		ID:      uid,
		Email:   email,
		PwdHash: pkgcrypto.HashPassword([]byte(password), salt),
		Salt:    salt,
		Role:    role,
	}
	if err := s.accounts.Create(ctx, a); err != nil {
		return model.SanitizedAccount{}, model.Session{}, err
	}

	tok, exp, err := s.tokens.Issue(a.ID, a.Role)
	if err != nil {
		return model.SanitizedAccount{}, model.Session{}, err
	}
	return a.Sanitized(), model.Session{Token: tok, ExpiresAt: exp}, nil
}

// Login authenticates the account and issues a fresh token. Lookup failure
// and password mismatch share one branch so callers cannot tell them apart.
func (s *AccountServiceImpl) Login(ctx context.Context, email, password string) (model.SanitizedAccount, model.Session, error) {
	if email == "" || password == "" {
		return model.SanitizedAccount{}, model.Session{}, fmt.Errorf("%w: email and password required", errs.ErrInvalidInput)
	}

	a, err := s.accounts.GetByEmail(ctx, email)
	if err != nil || !pkgcrypto.VerifyPassword([]byte(password), a.Salt, a.PwdHash) {
		return model.SanitizedAccount{}, model.Session{}, errs.ErrUnauthorized
	}

	tok, exp, err := s.tokens.Issue(a.ID, a.Role)
	if err != nil {
		return model.SanitizedAccount{}, model.Session{}, err
	}
	return a.Sanitized(), model.Session{Token: tok, ExpiresAt: exp}, nil
}

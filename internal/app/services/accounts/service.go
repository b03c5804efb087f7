// Package accounts implements registration, credential verification, and
// account removal with its cascade.
package accounts

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/devlink-network/devlink/internal/app/domain/account"
	"github.com/devlink-network/devlink/internal/app/storage"
	"github.com/devlink-network/devlink/internal/auth"
	"github.com/devlink-network/devlink/internal/errors"
	"github.com/devlink-network/devlink/pkg/logger"
)

const minPasswordLength = 6

// Service manages account lifecycle and credential checks.
type Service struct {
	accounts storage.AccountStore
	profiles storage.ProfileStore
	posts    storage.PostStore
	tokens   *auth.TokenService
	log      *logger.Logger
}

// New constructs an account service. The profile and post stores are needed
// for the delete cascade.
func New(accounts storage.AccountStore, profiles storage.ProfileStore, posts storage.PostStore, tokens *auth.TokenService, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("accounts")
	}
	return &Service{accounts: accounts, profiles: profiles, posts: posts, tokens: tokens, log: log}
}

// RegisterInput carries the fields accepted at sign-up.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates an account and returns it with a fresh identity token.
// Email uniqueness is case-insensitive; the avatar is derived from the email
// at registration and never recomputed.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*account.Account, string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	if in.Name == "" {
		return nil, "", errors.Validation("name is required")
	}
	if in.Email == "" {
		return nil, "", errors.Validation("email is required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, "", errors.Validation("password must be at least 6 characters")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", errors.Internal("hash password", err)
	}

	now := time.Now().UTC()
	acct := &account.Account{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Avatar:       account.DeriveAvatar(in.Email),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.accounts.Create(ctx, acct); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(acct.ID)
	if err != nil {
		return nil, "", err
	}

	s.log.WithContext(ctx).WithField("account_id", acct.ID).Info("account registered")
	return acct, token, nil
}

// Authenticate verifies an email/password pair and returns a fresh token.
// Unknown email and wrong password produce the same response so callers
// cannot probe for registered addresses.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*account.Account, string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, "", errors.Validation("email is required")
	}
	if password == "" {
		return nil, "", errors.Validation("password is required")
	}

	acct, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsCode(err, errors.CodeNotFound) {
			return nil, "", errors.Unauthorized("invalid credentials")
		}
		return nil, "", err
	}

	if !auth.CheckPassword(acct.PasswordHash, password) {
		return nil, "", errors.Unauthorized("invalid credentials")
	}

	token, err := s.tokens.Issue(acct.ID)
	if err != nil {
		return nil, "", err
	}

	s.log.WithContext(ctx).WithField("account_id", acct.ID).Info("account authenticated")
	return acct, token, nil
}

// Get returns the account by id.
func (s *Service) Get(ctx context.Context, id string) (*account.Account, error) {
	return s.accounts.Get(ctx, id)
}

// Delete removes an account and everything it owns: posts first, then the
// profile, then the account row. A missing profile is not an error; the
// cascade is deliberately tolerant so a partial earlier failure can be
// retried.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.accounts.Get(ctx, id); err != nil {
		return err
	}

	if err := s.posts.DeleteByAuthor(ctx, id); err != nil {
		return errors.Internal("delete posts for account", err)
	}

	if err := s.profiles.DeleteByAccount(ctx, id); err != nil && !errors.IsCode(err, errors.CodeNotFound) {
		return errors.Internal("delete profile for account", err)
	}

	if err := s.accounts.Delete(ctx, id); err != nil {
		return err
	}

	s.log.WithContext(ctx).WithField("account_id", id).Info("account deleted")
	return nil
}

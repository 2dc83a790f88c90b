package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/orchardhq/fruitdex/internal/api/domain"
	"github.com/orchardhq/fruitdex/internal/api/store"
	"github.com/orchardhq/fruitdex/pkg/cryptox"
	"github.com/orchardhq/fruitdex/pkg/idx"
	"github.com/orchardhq/fruitdex/pkg/jwtx"
	"github.com/orchardhq/fruitdex/pkg/slogx"
)

var (
	ErrAlreadyRegistered = errors.New("email already registered")
	ErrUserNotFound      = errors.New("user not found")
	ErrWrongPassword     = errors.New("wrong password")

	// ErrRoleMissing means the "user" seed role is absent at registration
	// time. The startup bootstrap guarantees it exists, so hitting this
	// is a configuration fault, not a client error.
	ErrRoleMissing = errors.New("seed role missing")
)

type AuthService struct {
	Store     store.Store
	Signer    jwtx.Signer
	Issuer    string
	AccessTTL time.Duration
}

// Register creates a new user with the default "user" role and logs them
// straight in. The lookup, insert, and role assignment run in a single
// transaction so a mid-sequence failure can never leave a user without a
// role.
func (s *AuthService) Register(ctx context.Context, email, password, displayName string) (*domain.AuthResult, error) {
	l := slogx.FromContext(ctx)

	passHash, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passHash,
		// Preferences start empty; tracking and location default to off.
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Users().GetUserByEmail(ctx, email)
		if err == nil {
			return ErrAlreadyRegistered
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		if err := tx.Users().CreateUser(ctx, user); err != nil {
			// Lost a race with a concurrent registration for the same email.
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrAlreadyRegistered
			}
			return err
		}

		role, err := tx.Roles().GetRoleByName(ctx, domain.RoleUser)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrRoleMissing
			}
			return err
		}

		return tx.Roles().AssignRole(ctx, user.ID, role.ID)
	})
	if err != nil {
		if errors.Is(err, ErrRoleMissing) {
			l.Error("registration found no 'user' role; startup seeding did not run", "email", email)
		}
		return nil, err
	}

	l.Info("user registered", "user_id", user.ID)
	return s.issue(user)
}

// Login verifies credentials and issues a fresh token. The last-login
// stamp is bookkeeping: its failure is logged but never turns a
// successful authentication into a failed one.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !cryptox.CheckPassword(password, user.PasswordHash) {
		l.Info("login rejected: wrong password", "user_id", user.ID)
		return nil, ErrWrongPassword
	}

	if err := s.Store.Users().UpdateLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		l.Warn("failed to stamp last login", "user_id", user.ID, slog.Any("err", err))
	}

	return s.issue(user)
}

func (s *AuthService) issue(user domain.User) (*domain.AuthResult, error) {
	claims := jwtx.NewAccessClaims(user.ID, user.Email, s.Issuer, s.AccessTTL, time.Now().UTC())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &domain.AuthResult{
		Token:     token,
		ExpiresIn: s.AccessTTL,
		User:      user.Summary(),
	}, nil
}

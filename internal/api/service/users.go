package service

import (
	"context"
	"fmt"

	"github.com/orchardhq/fruitdex/internal/api/domain"
	"github.com/orchardhq/fruitdex/internal/api/store"
	"github.com/orchardhq/fruitdex/pkg/cryptox"
)

type UserService struct {
	Store store.Store
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// UpdateDisplayName changes the user's display name.
func (s *UserService) UpdateDisplayName(ctx context.Context, userID, displayName string) error {
	return s.Store.Users().UpdateDisplayName(ctx, userID, displayName)
}

// ChangePassword verifies the current password before storing a hash of
// the new one.
func (s *UserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !cryptox.CheckPassword(currentPassword, user.PasswordHash) {
		return ErrWrongPassword
	}

	newHash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.Store.Users().UpdatePasswordHash(ctx, userID, newHash)
}

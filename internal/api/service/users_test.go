package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChangePassword(t *testing.T) {
	s := newTestStore(t)
	seedRoles(t, s)
	auth := newAuthService(t, s)
	users := &UserService{Store: s}
	ctx := context.Background()

	res := registerTestUser(t, auth, "frank@example.com", "old-password")

	require.NoError(t, users.ChangePassword(ctx, res.User.ID, "old-password", "new-password"))

	_, err := auth.Login(ctx, "frank@example.com", "old-password")
	require.ErrorIs(t, err, ErrWrongPassword)

	login, err := auth.Login(ctx, "frank@example.com", "new-password")
	require.NoError(t, err)
	require.NotEmpty(t, login.Token)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	s := newTestStore(t)
	seedRoles(t, s)
	auth := newAuthService(t, s)
	users := &UserService{Store: s}
	ctx := context.Background()

	res := registerTestUser(t, auth, "grace@example.com", "original")

	err := users.ChangePassword(ctx, res.User.ID, "not-the-password", "new")
	require.ErrorIs(t, err, ErrWrongPassword)

	// Unchanged: the original still works.
	_, err = auth.Login(ctx, "grace@example.com", "original")
	require.NoError(t, err)
}

func TestUpdateDisplayName(t *testing.T) {
	s := newTestStore(t)
	seedRoles(t, s)
	auth := newAuthService(t, s)
	users := &UserService{Store: s}
	ctx := context.Background()

	res := registerTestUser(t, auth, "heidi@example.com", "pw")

	require.NoError(t, users.UpdateDisplayName(ctx, res.User.ID, "Heidi H."))

	got, err := users.GetUserByID(ctx, res.User.ID)
	require.NoError(t, err)
	require.Equal(t, "Heidi H.", got.DisplayName)
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orchardhq/fruitdex/internal/api/domain"
)

func TestEnsureRolesSeedsEmptyTable(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedRoles(t, s)

	roles, err := s.Roles().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 2)

	names := []string{roles[0].Name, roles[1].Name}
	require.ElementsMatch(t, []string{domain.RoleAdmin, domain.RoleUser}, names)
}

func TestEnsureRolesIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedRoles(t, s)

	first, err := s.Roles().ListAll(ctx)
	require.NoError(t, err)

	// Second run is a no-op: same rows, same ids.
	seedRoles(t, s)

	second, err := s.Roles().ListAll(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEnsureRolesLeavesExistingAlone(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	custom := domain.Role{ID: "custom-role-id", Name: "moderator"}
	require.NoError(t, s.Roles().CreateRole(ctx, custom))

	// Table is non-empty, so seeding must not add the defaults.
	seedRoles(t, s)

	roles, err := s.Roles().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	require.Equal(t, "moderator", roles[0].Name)
}

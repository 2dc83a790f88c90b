package service

import (
	"context"

	"github.com/orchardhq/fruitdex/internal/api/domain"
	"github.com/orchardhq/fruitdex/internal/api/store"
)

// RolesService reads role data. It satisfies httpx.RoleLookup, so it is
// what the role-gating middleware queries on every gated request.
type RolesService struct {
	Store store.Store
}

// ListAll returns all roles in the system.
func (s *RolesService) ListAll(ctx context.Context) ([]domain.Role, error) {
	return s.Store.Roles().ListAll(ctx)
}

// RolesForUser returns the names of every role assigned to the user.
func (s *RolesService) RolesForUser(ctx context.Context, userID string) ([]string, error) {
	return s.Store.Roles().RolesForUser(ctx, userID)
}

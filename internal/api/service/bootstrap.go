package service

import (
	"context"
	"log/slog"

	"github.com/orchardhq/fruitdex/internal/api/domain"
	"github.com/orchardhq/fruitdex/internal/api/store"
	"github.com/orchardhq/fruitdex/pkg/idx"
)

type BootstrapService struct {
	Store  store.Store
	Logger *slog.Logger
}

// EnsureRoles seeds the role table with exactly {admin, user} when it is
// empty. Runs once at startup, before the listener binds, which is the
// invariant the rest of the system relies on: after init the roles table
// is never empty, so request paths never need to re-seed.
func (s *BootstrapService) EnsureRoles(ctx context.Context) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		empty, err := tx.Roles().IsEmpty(ctx)
		if err != nil {
			return err
		}
		if !empty {
			return nil
		}

		for _, name := range []string{domain.RoleAdmin, domain.RoleUser} {
			role := domain.Role{
				ID:   idx.New().String(),
				Name: name,
			}
			if err := tx.Roles().CreateRole(ctx, role); err != nil {
				return err
			}
		}

		s.Logger.Info("seeded roles", "roles", []string{domain.RoleAdmin, domain.RoleUser})
		return nil
	})
}

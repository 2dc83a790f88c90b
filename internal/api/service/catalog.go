package service

import (
	"context"

	"github.com/orchardhq/fruitdex/internal/api/domain"
	"github.com/orchardhq/fruitdex/internal/api/store"
	"github.com/orchardhq/fruitdex/pkg/idx"
)

// CatalogService handles the fruit, region, and recipe catalogs. Thin by
// design: the interesting behaviour (gating) happens in middleware before
// any of this runs.
type CatalogService struct {
	Store store.Store
}

func (s *CatalogService) ListFruits(ctx context.Context) ([]domain.Fruit, error) {
	return s.Store.Fruits().ListFruits(ctx)
}

func (s *CatalogService) GetFruit(ctx context.Context, id string) (domain.Fruit, error) {
	return s.Store.Fruits().GetFruitByID(ctx, id)
}

func (s *CatalogService) CreateFruit(ctx context.Context, f domain.Fruit) (domain.Fruit, error) {
	f.ID = idx.New().String()
	if err := s.Store.Fruits().CreateFruit(ctx, f); err != nil {
		return domain.Fruit{}, err
	}
	return s.Store.Fruits().GetFruitByID(ctx, f.ID)
}

func (s *CatalogService) UpdateFruit(ctx context.Context, f domain.Fruit) (domain.Fruit, error) {
	if err := s.Store.Fruits().UpdateFruit(ctx, f); err != nil {
		return domain.Fruit{}, err
	}
	return s.Store.Fruits().GetFruitByID(ctx, f.ID)
}

func (s *CatalogService) DeleteFruit(ctx context.Context, id string) error {
	return s.Store.Fruits().DeleteFruit(ctx, id)
}

func (s *CatalogService) ListRegions(ctx context.Context) ([]domain.Region, error) {
	return s.Store.Regions().ListRegions(ctx)
}

func (s *CatalogService) GetRegion(ctx context.Context, id string) (domain.Region, error) {
	return s.Store.Regions().GetRegionByID(ctx, id)
}

func (s *CatalogService) CreateRegion(ctx context.Context, r domain.Region) (domain.Region, error) {
	r.ID = idx.New().String()
	if err := s.Store.Regions().CreateRegion(ctx, r); err != nil {
		return domain.Region{}, err
	}
	return s.Store.Regions().GetRegionByID(ctx, r.ID)
}

func (s *CatalogService) UpdateRegion(ctx context.Context, r domain.Region) (domain.Region, error) {
	if err := s.Store.Regions().UpdateRegion(ctx, r); err != nil {
		return domain.Region{}, err
	}
	return s.Store.Regions().GetRegionByID(ctx, r.ID)
}

func (s *CatalogService) DeleteRegion(ctx context.Context, id string) error {
	return s.Store.Regions().DeleteRegion(ctx, id)
}

func (s *CatalogService) ListRecipes(ctx context.Context, fruitID string) ([]domain.Recipe, error) {
	return s.Store.Recipes().ListRecipes(ctx, fruitID)
}

func (s *CatalogService) GetRecipe(ctx context.Context, id string) (domain.Recipe, error) {
	return s.Store.Recipes().GetRecipeByID(ctx, id)
}

// CreateRecipe records a recipe submitted by authorID. The fruit must
// exist; the FK enforces it, but checking first gives callers a clean
// not-found instead of a constraint error.
func (s *CatalogService) CreateRecipe(ctx context.Context, r domain.Recipe, authorID string) (domain.Recipe, error) {
	if _, err := s.Store.Fruits().GetFruitByID(ctx, r.FruitID); err != nil {
		return domain.Recipe{}, err
	}

	r.ID = idx.New().String()
	r.AuthorID = authorID
	if err := s.Store.Recipes().CreateRecipe(ctx, r); err != nil {
		return domain.Recipe{}, err
	}
	return s.Store.Recipes().GetRecipeByID(ctx, r.ID)
}

func (s *CatalogService) DeleteRecipe(ctx context.Context, id string) error {
	return s.Store.Recipes().DeleteRecipe(ctx, id)
}

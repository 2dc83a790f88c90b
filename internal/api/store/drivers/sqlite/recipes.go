package sqlite

import (
	"context"
	"time"

	"github.com/orchardhq/fruitdex/internal/api/domain"
)

type recipesRepo struct {
	db dbtx
}

const recipeColumns = `id, fruit_id, title, instructions, author_id, created_at, updated_at`

func scanRecipe(scan func(dest ...any) error) (domain.Recipe, error) {
	var rec domain.Recipe
	err := scan(
		&rec.ID,
		&rec.FruitID,
		&rec.Title,
		&rec.Instructions,
		&rec.AuthorID,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return domain.Recipe{}, mapNotFound(err)
	}
	return rec, nil
}

func (r *recipesRepo) GetRecipeByID(ctx context.Context, id string) (domain.Recipe, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE id = ?`, id)
	return scanRecipe(row.Scan)
}

func (r *recipesRepo) ListRecipes(ctx context.Context, fruitID string) ([]domain.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes ORDER BY created_at DESC`
	args := []any{}
	if fruitID != "" {
		query = `SELECT ` + recipeColumns + ` FROM recipes WHERE fruit_id = ? ORDER BY created_at DESC`
		args = append(args, fruitID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipes []domain.Recipe
	for rows.Next() {
		rec, err := scanRecipe(rows.Scan)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, rec)
	}
	return recipes, rows.Err()
}

func (r *recipesRepo) CreateRecipe(ctx context.Context, rec domain.Recipe) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO recipes (id, fruit_id, title, instructions, author_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.FruitID, rec.Title, rec.Instructions, rec.AuthorID, now, now)
	return mapConstraint(err)
}

func (r *recipesRepo) DeleteRecipe(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowChanged(res)
}

package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/orchardhq/fruitdex/internal/api/domain"
)

type fruitsRepo struct {
	db dbtx
}

const fruitColumns = `id, name, description, season, region_id, created_at, updated_at`

func scanFruit(scan func(dest ...any) error) (domain.Fruit, error) {
	var f domain.Fruit
	var regionID sql.NullString
	err := scan(
		&f.ID,
		&f.Name,
		&f.Description,
		&f.Season,
		&regionID,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return domain.Fruit{}, mapNotFound(err)
	}
	f.RegionID = regionID.String
	return f, nil
}

func (r *fruitsRepo) GetFruitByID(ctx context.Context, id string) (domain.Fruit, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+fruitColumns+` FROM fruits WHERE id = ?`, id)
	return scanFruit(row.Scan)
}

func (r *fruitsRepo) GetFruitByName(ctx context.Context, name string) (domain.Fruit, error) {
	// The name column is COLLATE NOCASE, so provider labels like
	// "Dragon Fruit" match the catalog's "dragon fruit".
	row := r.db.QueryRowContext(ctx,
		`SELECT `+fruitColumns+` FROM fruits WHERE name = ?`, name)
	return scanFruit(row.Scan)
}

func (r *fruitsRepo) ListFruits(ctx context.Context) ([]domain.Fruit, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+fruitColumns+` FROM fruits ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fruits []domain.Fruit
	for rows.Next() {
		f, err := scanFruit(rows.Scan)
		if err != nil {
			return nil, err
		}
		fruits = append(fruits, f)
	}
	return fruits, rows.Err()
}

func (r *fruitsRepo) CreateFruit(ctx context.Context, f domain.Fruit) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO fruits (id, name, description, season, region_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.ID,
		f.Name,
		f.Description,
		f.Season,
		nullIfEmpty(f.RegionID),
		now,
		now,
	)
	return mapConstraint(err)
}

func (r *fruitsRepo) UpdateFruit(ctx context.Context, f domain.Fruit) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE fruits
		SET name = ?, description = ?, season = ?, region_id = ?, updated_at = ?
		WHERE id = ?`,
		f.Name,
		f.Description,
		f.Season,
		nullIfEmpty(f.RegionID),
		time.Now().UTC(),
		f.ID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRowChanged(res)
}

func (r *fruitsRepo) DeleteFruit(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM fruits WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowChanged(res)
}

func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

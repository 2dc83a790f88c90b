package sqlite

import (
	"context"
	"time"

	"github.com/orchardhq/fruitdex/internal/api/domain"
)

type regionsRepo struct {
	db dbtx
}

const regionColumns = `id, name, climate, description, created_at, updated_at`

func scanRegion(scan func(dest ...any) error) (domain.Region, error) {
	var reg domain.Region
	err := scan(
		&reg.ID,
		&reg.Name,
		&reg.Climate,
		&reg.Description,
		&reg.CreatedAt,
		&reg.UpdatedAt,
	)
	if err != nil {
		return domain.Region{}, mapNotFound(err)
	}
	return reg, nil
}

func (r *regionsRepo) GetRegionByID(ctx context.Context, id string) (domain.Region, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+regionColumns+` FROM regions WHERE id = ?`, id)
	return scanRegion(row.Scan)
}

func (r *regionsRepo) ListRegions(ctx context.Context) ([]domain.Region, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+regionColumns+` FROM regions ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regions []domain.Region
	for rows.Next() {
		reg, err := scanRegion(rows.Scan)
		if err != nil {
			return nil, err
		}
		regions = append(regions, reg)
	}
	return regions, rows.Err()
}

func (r *regionsRepo) CreateRegion(ctx context.Context, reg domain.Region) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO regions (id, name, climate, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		reg.ID, reg.Name, reg.Climate, reg.Description, now, now)
	return mapConstraint(err)
}

func (r *regionsRepo) UpdateRegion(ctx context.Context, reg domain.Region) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE regions
		SET name = ?, climate = ?, description = ?, updated_at = ?
		WHERE id = ?`,
		reg.Name, reg.Climate, reg.Description, time.Now().UTC(), reg.ID)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRowChanged(res)
}

func (r *regionsRepo) DeleteRegion(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM regions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowChanged(res)
}

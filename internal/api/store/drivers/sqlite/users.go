package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/orchardhq/fruitdex/internal/api/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, email, display_name, password_hash, preferences,
	tracking_consent, location_permission, created_at, last_login_at`

func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	var lastLogin sql.NullTime
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.DisplayName,
		&u.PasswordHash,
		&u.Preferences,
		&u.TrackingConsent,
		&u.LocationPermission,
		&u.CreatedAt,
		&lastLogin,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLoginAt = &t
	}
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, display_name, password_hash, preferences,
			tracking_consent, location_permission, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID,
		u.Email,
		u.DisplayName,
		u.PasswordHash,
		u.Preferences,
		u.TrackingConsent,
		u.LocationPermission,
		createdAt,
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateDisplayName(ctx context.Context, userID, displayName string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET display_name = ? WHERE id = ?`, displayName, userID)
	if err != nil {
		return err
	}
	return requireRowChanged(res)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID, newHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE id = ?`, newHash, userID)
	if err != nil {
		return err
	}
	return requireRowChanged(res)
}

func (r *usersRepo) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET last_login_at = ? WHERE id = ?`, at.UTC(), userID)
	if err != nil {
		return err
	}
	return requireRowChanged(res)
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

package store

import (
	"context"
	"errors"
	"time"

	"github.com/orchardhq/fruitdex/internal/api/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement this. It exposes sub-repositories to keep concerns tidy
// and testable, and a transactional wrapper for multi-step flows like
// registration that must be atomic.
type Store interface {
	Users() Users
	Roles() Roles
	Fruits() Fruits
	Regions() Regions
	Recipes() Recipes

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn
	// returns nil and rolling back otherwise. Prefer this over Tx.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login and duplicate-registration
	// checks. Emails compare case-sensitively, exactly as stored.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateDisplayName mutates display_name.
	UpdateDisplayName(ctx context.Context, userID, displayName string) error

	// UpdatePasswordHash sets the password_hash (argon2id).
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error

	// UpdateLastLogin stamps last_login_at.
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Roles interface {
	// GetRoleByName fetches a role by its unique name.
	GetRoleByName(ctx context.Context, name string) (domain.Role, error)

	// ListAll returns every role in the system.
	ListAll(ctx context.Context) ([]domain.Role, error)

	// CreateRole inserts a new role (id is ULID).
	CreateRole(ctx context.Context, r domain.Role) error

	// AssignRole links a user to a role. Assigning an already-held role
	// is not an error.
	AssignRole(ctx context.Context, userID, roleID string) error

	// RolesForUser returns the names of every role assigned to a user.
	// A user with no assignments gets an empty slice, not an error.
	RolesForUser(ctx context.Context, userID string) ([]string, error)

	// IsEmpty returns true if there are no roles.
	IsEmpty(ctx context.Context) (bool, error)
}

type Fruits interface {
	GetFruitByID(ctx context.Context, id string) (domain.Fruit, error)

	// GetFruitByName matches case-insensitively; the recognition flow
	// maps provider labels onto catalog entries with it.
	GetFruitByName(ctx context.Context, name string) (domain.Fruit, error)

	ListFruits(ctx context.Context) ([]domain.Fruit, error)
	CreateFruit(ctx context.Context, f domain.Fruit) error
	UpdateFruit(ctx context.Context, f domain.Fruit) error
	DeleteFruit(ctx context.Context, id string) error
}

type Regions interface {
	GetRegionByID(ctx context.Context, id string) (domain.Region, error)
	ListRegions(ctx context.Context) ([]domain.Region, error)
	CreateRegion(ctx context.Context, r domain.Region) error
	UpdateRegion(ctx context.Context, r domain.Region) error
	DeleteRegion(ctx context.Context, id string) error
}

type Recipes interface {
	GetRecipeByID(ctx context.Context, id string) (domain.Recipe, error)

	// ListRecipes returns all recipes, or only those for fruitID when it
	// is non-empty.
	ListRecipes(ctx context.Context, fruitID string) ([]domain.Recipe, error)

	CreateRecipe(ctx context.Context, r domain.Recipe) error
	DeleteRecipe(ctx context.Context, id string) error
}

package sqlite

import (
	"context"
	"database/sql"

	"github.com/orchardhq/fruitdex/internal/api/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the caller commits/rollbacks and the outer DB stays open.
func (t *txStore) Close() error { return nil }

// Ping is a no-op for transactions; the connection already exists.
func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested transactions are not supported.
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

// ApplyMigrations is a no-op; migrations run before any transaction starts.
func (t *txStore) ApplyMigrations() error { return nil }

func (t *txStore) Users() store.Users     { return &usersRepo{db: t.tx} }
func (t *txStore) Roles() store.Roles     { return &rolesRepo{db: t.tx} }
func (t *txStore) Fruits() store.Fruits   { return &fruitsRepo{db: t.tx} }
func (t *txStore) Regions() store.Regions { return &regionsRepo{db: t.tx} }
func (t *txStore) Recipes() store.Recipes { return &recipesRepo{db: t.tx} }

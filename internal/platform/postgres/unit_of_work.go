package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/kanban-api/internal/store"
)

// UnitOfWork implements store.UnitOfWork on a *sql.DB.
type UnitOfWork struct {
	db     *sql.DB
	stores store.Stores
}

var _ store.UnitOfWork = (*UnitOfWork)(nil)

// NewUnitOfWork builds the PostgreSQL stores on db.
func NewUnitOfWork(db *sql.DB, logger *slog.Logger) *UnitOfWork {
	return &UnitOfWork{
		db: db,
		stores: store.Stores{
			Users:   NewPostgresUserStore(db, logger),
			Boards:  NewPostgresBoardStore(db, logger),
			Columns: NewPostgresColumnStore(db, logger),
			Cards:   NewPostgresCardStore(db, logger),
		},
	}
}

// Stores implements store.UnitOfWork.Stores
func (u *UnitOfWork) Stores() store.Stores {
	return u.stores
}

// RunInTx implements store.UnitOfWork.RunInTx
func (u *UnitOfWork) RunInTx(ctx context.Context, fn func(ctx context.Context, tx store.Stores) error) error {
	return store.RunInTransaction(ctx, u.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, store.Stores{
			Users:   u.stores.Users.WithTx(tx),
			Boards:  u.stores.Boards.WithTx(tx),
			Columns: u.stores.Columns.WithTx(tx),
			Cards:   u.stores.Cards.WithTx(tx),
		})
	})
}

package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/kanban-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user and assigns user.ID.
	// The user must carry a HashedPassword; the plaintext is never stored.
	// Returns ErrUsernameExists if the username is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername retrieves a user by username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// WithTx returns a UserStore bound to tx.
	WithTx(tx *sql.Tx) UserStore
}

// BoardStore defines the interface for board data persistence.
type BoardStore interface {
	// Create saves a new board and assigns board.ID.
	Create(ctx context.Context, board *domain.Board) error

	// GetByID retrieves a board without its columns.
	// Returns ErrBoardNotFound if the board does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Board, error)

	// ListByUser returns the boards owned by userID ordered by id.
	ListByUser(ctx context.Context, userID int64) ([]domain.Board, error)

	// Delete removes a board. Its columns and cards are removed by cascade.
	// Returns ErrBoardNotFound if the board does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a BoardStore bound to tx.
	WithTx(tx *sql.Tx) BoardStore
}

// ColumnStore defines the interface for column data persistence.
// List methods order results by (position_id, id).
type ColumnStore interface {
	Create(ctx context.Context, column *domain.Column) error

	// GetByID returns ErrColumnNotFound if the column does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Column, error)

	ListByBoard(ctx context.Context, boardID int64) ([]domain.Column, error)

	// ListByUser returns every column on boards owned by userID.
	ListByUser(ctx context.Context, userID int64) ([]domain.Column, error)

	// Update persists name and position_id. Returns ErrColumnNotFound if the
	// column does not exist.
	Update(ctx context.Context, column *domain.Column) error

	// Delete removes a column and, by cascade, its cards.
	Delete(ctx context.Context, id int64) error

	WithTx(tx *sql.Tx) ColumnStore
}

// CardStore defines the interface for card data persistence.
// List methods order results by (position_id, id).
type CardStore interface {
	Create(ctx context.Context, card *domain.Card) error

	// GetByID returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Card, error)

	ListByColumn(ctx context.Context, columnID int64) ([]domain.Card, error)

	// ListByBoard returns every card in every column of boardID.
	ListByBoard(ctx context.Context, boardID int64) ([]domain.Card, error)

	// ListByUser returns every card on boards owned by userID.
	ListByUser(ctx context.Context, userID int64) ([]domain.Card, error)

	// Update persists task, position_id and column_id. Returns ErrCardNotFound
	// if the card does not exist, ErrIntegrity if column_id references no column.
	Update(ctx context.Context, card *domain.Card) error

	Delete(ctx context.Context, id int64) error

	WithTx(tx *sql.Tx) CardStore
}

// Stores groups the entity stores bound to the same connection or transaction.
type Stores struct {
	Users   UserStore
	Boards  BoardStore
	Columns ColumnStore
	Cards   CardStore
}

// UnitOfWork gives access to the entity stores and runs groups of
// mutations atomically.
type UnitOfWork interface {
	// Stores returns stores bound to the underlying connection, for reads
	// and single-statement writes.
	Stores() Stores

	// RunInTx calls fn with stores bound to a new transaction. The
	// transaction commits if fn returns nil and rolls back otherwise.
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx Stores) error) error
}

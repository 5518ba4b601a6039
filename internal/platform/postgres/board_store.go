package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/phrazzld/kanban-api/internal/redact"
	"github.com/phrazzld/kanban-api/internal/store"
)

// PostgresBoardStore implements the store.BoardStore interface.
type PostgresBoardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBoardStore creates a new PostgreSQL implementation of the BoardStore interface.
func NewPostgresBoardStore(db store.DBTX, logger *slog.Logger) *PostgresBoardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresBoardStore{
		db:     db,
		logger: logger.With(slog.String("component", "board_store")),
	}
}

var _ store.BoardStore = (*PostgresBoardStore)(nil)

// WithTx implements store.BoardStore.WithTx
func (s *PostgresBoardStore) WithTx(tx *sql.Tx) store.BoardStore {
	return &PostgresBoardStore{db: tx, logger: s.logger}
}

// Create implements store.BoardStore.Create
func (s *PostgresBoardStore) Create(ctx context.Context, board *domain.Board) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := board.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO boards (name, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		board.Name, board.UserID, board.CreatedAt, board.UpdatedAt,
	).Scan(&board.ID)
	if err != nil {
		log.Error("failed to create board",
			slog.String("error", redact.Error(err)),
			slog.Int64("user_id", board.UserID))
		return MapError(err)
	}

	log.Info("board created",
		slog.Int64("board_id", board.ID),
		slog.Int64("user_id", board.UserID))
	return nil
}

// GetByID implements store.BoardStore.GetByID
func (s *PostgresBoardStore) GetByID(ctx context.Context, id int64) (*domain.Board, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, user_id, created_at, updated_at
		FROM boards
		WHERE id = $1
	`
	var board domain.Board
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&board.ID, &board.Name, &board.UserID, &board.CreatedAt, &board.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrBoardNotFound
		}
		log.Error("failed to get board",
			slog.String("error", redact.Error(err)),
			slog.Int64("board_id", id))
		return nil, MapError(err)
	}
	return &board, nil
}

// ListByUser implements store.BoardStore.ListByUser
func (s *PostgresBoardStore) ListByUser(ctx context.Context, userID int64) ([]domain.Board, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, user_id, created_at, updated_at
		FROM boards
		WHERE user_id = $1
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list boards",
			slog.String("error", redact.Error(err)),
			slog.Int64("user_id", userID))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	boards := []domain.Board{}
	for rows.Next() {
		var b domain.Board
		if err := rows.Scan(&b.ID, &b.Name, &b.UserID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, MapError(err)
		}
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return boards, nil
}

// Delete implements store.BoardStore.Delete
func (s *PostgresBoardStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM boards WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete board",
			slog.String("error", redact.Error(err)),
			slog.Int64("board_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrBoardNotFound); err != nil {
		return err
	}

	log.Info("board deleted", slog.Int64("board_id", id))
	return nil
}

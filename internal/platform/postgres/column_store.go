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

const columnSelect = `
	SELECT c.id, c.name, c.position_id, c.board_id, c.created_at, c.updated_at
	FROM board_columns c
`

// PostgresColumnStore implements the store.ColumnStore interface.
type PostgresColumnStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresColumnStore creates a new PostgreSQL implementation of the ColumnStore interface.
func NewPostgresColumnStore(db store.DBTX, logger *slog.Logger) *PostgresColumnStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresColumnStore{
		db:     db,
		logger: logger.With(slog.String("component", "column_store")),
	}
}

var _ store.ColumnStore = (*PostgresColumnStore)(nil)

// WithTx implements store.ColumnStore.WithTx
func (s *PostgresColumnStore) WithTx(tx *sql.Tx) store.ColumnStore {
	return &PostgresColumnStore{db: tx, logger: s.logger}
}

// Create implements store.ColumnStore.Create
// Returns store.ErrIntegrity if the board does not exist.
func (s *PostgresColumnStore) Create(ctx context.Context, column *domain.Column) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := column.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO board_columns (name, position_id, board_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		column.Name, column.PositionID, column.BoardID, column.CreatedAt, column.UpdatedAt,
	).Scan(&column.ID)
	if err != nil {
		log.Error("failed to create column",
			slog.String("error", redact.Error(err)),
			slog.Int64("board_id", column.BoardID))
		return MapError(err)
	}

	log.Info("column created",
		slog.Int64("column_id", column.ID),
		slog.Int64("board_id", column.BoardID))
	return nil
}

// GetByID implements store.ColumnStore.GetByID
func (s *PostgresColumnStore) GetByID(ctx context.Context, id int64) (*domain.Column, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var c domain.Column
	err := s.db.QueryRowContext(ctx, columnSelect+` WHERE c.id = $1`, id).Scan(
		&c.ID, &c.Name, &c.PositionID, &c.BoardID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrColumnNotFound
		}
		log.Error("failed to get column",
			slog.String("error", redact.Error(err)),
			slog.Int64("column_id", id))
		return nil, MapError(err)
	}
	return &c, nil
}

// ListByBoard implements store.ColumnStore.ListByBoard
func (s *PostgresColumnStore) ListByBoard(ctx context.Context, boardID int64) ([]domain.Column, error) {
	return s.list(ctx, columnSelect+`
		WHERE c.board_id = $1
		ORDER BY c.position_id, c.id
	`, boardID)
}

// ListByUser implements store.ColumnStore.ListByUser
func (s *PostgresColumnStore) ListByUser(ctx context.Context, userID int64) ([]domain.Column, error) {
	return s.list(ctx, columnSelect+`
		JOIN boards b ON b.id = c.board_id
		WHERE b.user_id = $1
		ORDER BY c.position_id, c.id
	`, userID)
}

func (s *PostgresColumnStore) list(ctx context.Context, query string, arg int64) ([]domain.Column, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		log.Error("failed to list columns", slog.String("error", redact.Error(err)))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	columns := []domain.Column{}
	for rows.Next() {
		var c domain.Column
		if err := rows.Scan(&c.ID, &c.Name, &c.PositionID, &c.BoardID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, MapError(err)
		}
		columns = append(columns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return columns, nil
}

// Update implements store.ColumnStore.Update
func (s *PostgresColumnStore) Update(ctx context.Context, column *domain.Column) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := column.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE board_columns
		SET name = $1, position_id = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := s.db.ExecContext(ctx, query,
		column.Name, column.PositionID, column.UpdatedAt, column.ID)
	if err != nil {
		log.Error("failed to update column",
			slog.String("error", redact.Error(err)),
			slog.Int64("column_id", column.ID))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrColumnNotFound)
}

// Delete implements store.ColumnStore.Delete
func (s *PostgresColumnStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM board_columns WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete column",
			slog.String("error", redact.Error(err)),
			slog.Int64("column_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrColumnNotFound); err != nil {
		return err
	}

	log.Debug("column deleted", slog.Int64("column_id", id))
	return nil
}

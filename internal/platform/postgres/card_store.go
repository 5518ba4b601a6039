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

const cardSelect = `
	SELECT k.id, k.task, k.position_id, k.column_id, k.created_at, k.updated_at
	FROM cards k
`

// PostgresCardStore implements the store.CardStore interface.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the CardStore interface.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

var _ store.CardStore = (*PostgresCardStore)(nil)

// WithTx implements store.CardStore.WithTx
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{db: tx, logger: s.logger}
}

// Create implements store.CardStore.Create
// Returns store.ErrIntegrity if the column does not exist.
func (s *PostgresCardStore) Create(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO cards (task, position_id, column_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		card.Task, card.PositionID, card.ColumnID, card.CreatedAt, card.UpdatedAt,
	).Scan(&card.ID)
	if err != nil {
		log.Error("failed to create card",
			slog.String("error", redact.Error(err)),
			slog.Int64("column_id", card.ColumnID))
		return MapError(err)
	}

	log.Info("card created",
		slog.Int64("card_id", card.ID),
		slog.Int64("column_id", card.ColumnID))
	return nil
}

// GetByID implements store.CardStore.GetByID
func (s *PostgresCardStore) GetByID(ctx context.Context, id int64) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var c domain.Card
	err := s.db.QueryRowContext(ctx, cardSelect+` WHERE k.id = $1`, id).Scan(
		&c.ID, &c.Task, &c.PositionID, &c.ColumnID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to get card",
			slog.String("error", redact.Error(err)),
			slog.Int64("card_id", id))
		return nil, MapError(err)
	}
	return &c, nil
}

// ListByColumn implements store.CardStore.ListByColumn
func (s *PostgresCardStore) ListByColumn(ctx context.Context, columnID int64) ([]domain.Card, error) {
	return s.list(ctx, cardSelect+`
		WHERE k.column_id = $1
		ORDER BY k.position_id, k.id
	`, columnID)
}

// ListByBoard implements store.CardStore.ListByBoard
func (s *PostgresCardStore) ListByBoard(ctx context.Context, boardID int64) ([]domain.Card, error) {
	return s.list(ctx, cardSelect+`
		JOIN board_columns c ON c.id = k.column_id
		WHERE c.board_id = $1
		ORDER BY k.position_id, k.id
	`, boardID)
}

// ListByUser implements store.CardStore.ListByUser
func (s *PostgresCardStore) ListByUser(ctx context.Context, userID int64) ([]domain.Card, error) {
	return s.list(ctx, cardSelect+`
		JOIN board_columns c ON c.id = k.column_id
		JOIN boards b ON b.id = c.board_id
		WHERE b.user_id = $1
		ORDER BY k.position_id, k.id
	`, userID)
}

func (s *PostgresCardStore) list(ctx context.Context, query string, arg int64) ([]domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		log.Error("failed to list cards", slog.String("error", redact.Error(err)))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	cards := []domain.Card{}
	for rows.Next() {
		var c domain.Card
		if err := rows.Scan(&c.ID, &c.Task, &c.PositionID, &c.ColumnID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, MapError(err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return cards, nil
}

// Update implements store.CardStore.Update
func (s *PostgresCardStore) Update(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE cards
		SET task = $1, position_id = $2, column_id = $3, updated_at = $4
		WHERE id = $5
	`
	result, err := s.db.ExecContext(ctx, query,
		card.Task, card.PositionID, card.ColumnID, card.UpdatedAt, card.ID)
	if err != nil {
		log.Error("failed to update card",
			slog.String("error", redact.Error(err)),
			slog.Int64("card_id", card.ID))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrCardNotFound)
}

// Delete implements store.CardStore.Delete
func (s *PostgresCardStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete card",
			slog.String("error", redact.Error(err)),
			slog.Int64("card_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrCardNotFound); err != nil {
		return err
	}

	log.Debug("card deleted", slog.Int64("card_id", id))
	return nil
}

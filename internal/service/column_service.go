package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/phrazzld/kanban-api/internal/service/bulk"
	"github.com/phrazzld/kanban-api/internal/store"
)

// CreateColumnInput carries the fields of a new column.
type CreateColumnInput struct {
	Name       string
	PositionID int
	BoardID    int64
}

// ColumnService provides column-related operations for the calling user.
type ColumnService interface {
	// GetColumn returns the column with its cards ordered by (position_id, id).
	GetColumn(ctx context.Context, userID, columnID int64) (*domain.Column, error)

	// CreateColumn adds a column to one of the caller's boards.
	CreateColumn(ctx context.Context, userID int64, in CreateColumnInput) (*domain.Column, error)

	// BulkUpdateColumns applies items to the caller's columns, restricted to
	// boardID when it is non-nil, and returns the surviving columns in
	// submission order. The batch is atomic.
	BulkUpdateColumns(
		ctx context.Context,
		userID int64,
		boardID *int64,
		items []bulk.Item[domain.ColumnPatch],
	) ([]domain.Column, error)
}

type columnServiceImpl struct {
	uow    store.UnitOfWork
	logger *slog.Logger
}

// NewColumnService creates a new ColumnService.
func NewColumnService(uow store.UnitOfWork, logger *slog.Logger) (ColumnService, error) {
	if uow == nil {
		return nil, domain.NewValidationError("uow", "cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &columnServiceImpl{
		uow:    uow,
		logger: logger.With(slog.String("component", "column_service")),
	}, nil
}

// GetColumn implements ColumnService.GetColumn
func (s *columnServiceImpl) GetColumn(ctx context.Context, userID, columnID int64) (*domain.Column, error) {
	stores := s.uow.Stores()

	column, err := ownedColumn(ctx, stores, userID, columnID)
	if err != nil {
		return nil, err
	}

	cards, err := stores.Cards.ListByColumn(ctx, column.ID)
	if err != nil {
		return nil, NewServiceError("column", "get", err)
	}
	column.Cards = cards
	return column, nil
}

// CreateColumn implements ColumnService.CreateColumn
func (s *columnServiceImpl) CreateColumn(
	ctx context.Context,
	userID int64,
	in CreateColumnInput,
) (*domain.Column, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	column, err := domain.NewColumn(in.BoardID, in.Name, in.PositionID)
	if err != nil {
		return nil, err
	}

	err = s.uow.RunInTx(ctx, func(ctx context.Context, tx store.Stores) error {
		if _, err := ownedBoard(ctx, tx, userID, in.BoardID); err != nil {
			return err
		}
		return tx.Columns.Create(ctx, column)
	})
	if err != nil {
		return nil, err
	}

	log.Debug("column created",
		slog.Int64("column_id", column.ID),
		slog.Int64("board_id", column.BoardID))
	column.Cards = []domain.Card{}
	return column, nil
}

// BulkUpdateColumns implements ColumnService.BulkUpdateColumns
func (s *columnServiceImpl) BulkUpdateColumns(
	ctx context.Context,
	userID int64,
	boardID *int64,
	items []bulk.Item[domain.ColumnPatch],
) ([]domain.Column, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var result []domain.Column
	err := s.uow.RunInTx(ctx, func(ctx context.Context, tx store.Stores) error {
		var (
			instance []domain.Column
			err      error
		)
		if boardID != nil {
			if _, err := ownedBoard(ctx, tx, userID, *boardID); err != nil {
				return err
			}
			instance, err = tx.Columns.ListByBoard(ctx, *boardID)
		} else {
			instance, err = tx.Columns.ListByUser(ctx, userID)
		}
		if err != nil {
			return err
		}

		result, err = bulk.Apply(ctx, instance, items, bulk.Ops[domain.Column, domain.ColumnPatch]{
			ID:     func(c domain.Column) int64 { return c.ID },
			Delete: tx.Columns.Delete,
			Update: func(ctx context.Context, column domain.Column, patch domain.ColumnPatch) (domain.Column, error) {
				if err := column.Apply(patch); err != nil {
					return domain.Column{}, err
				}
				if err := tx.Columns.Update(ctx, &column); err != nil {
					return domain.Column{}, err
				}
				return column, nil
			},
			NotFound: store.ErrColumnNotFound,
		})
		return err
	})
	if err != nil {
		log.Debug("bulk column update rolled back", slog.String("error", err.Error()))
		return nil, err
	}

	log.Info("bulk column update applied",
		slog.Int("items", len(items)),
		slog.Int("survivors", len(result)))
	return result, nil
}

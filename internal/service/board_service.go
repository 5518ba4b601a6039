package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/phrazzld/kanban-api/internal/store"
)

// BoardService provides board-related operations for the calling user.
type BoardService interface {
	// ListBoards returns the caller's boards without children.
	ListBoards(ctx context.Context, userID int64) ([]domain.Board, error)

	// CreateBoard creates an empty board owned by the caller.
	CreateBoard(ctx context.Context, userID int64, name string) (*domain.Board, error)

	// GetBoard returns the board with its columns, each with its cards,
	// ordered by (position_id, id).
	GetBoard(ctx context.Context, userID, boardID int64) (*domain.Board, error)

	// DeleteBoard removes the board together with its columns and cards.
	DeleteBoard(ctx context.Context, userID, boardID int64) error
}

type boardServiceImpl struct {
	uow    store.UnitOfWork
	logger *slog.Logger
}

// NewBoardService creates a new BoardService.
func NewBoardService(uow store.UnitOfWork, logger *slog.Logger) (BoardService, error) {
	if uow == nil {
		return nil, domain.NewValidationError("uow", "cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &boardServiceImpl{
		uow:    uow,
		logger: logger.With(slog.String("component", "board_service")),
	}, nil
}

// ListBoards implements BoardService.ListBoards
func (s *boardServiceImpl) ListBoards(ctx context.Context, userID int64) ([]domain.Board, error) {
	boards, err := s.uow.Stores().Boards.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewServiceError("board", "list", err)
	}
	return boards, nil
}

// CreateBoard implements BoardService.CreateBoard
func (s *boardServiceImpl) CreateBoard(ctx context.Context, userID int64, name string) (*domain.Board, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	board, err := domain.NewBoard(userID, name)
	if err != nil {
		return nil, err
	}
	if err := s.uow.Stores().Boards.Create(ctx, board); err != nil {
		return nil, NewServiceError("board", "create", err)
	}

	log.Debug("board created", slog.Int64("board_id", board.ID))
	return board, nil
}

// GetBoard implements BoardService.GetBoard
func (s *boardServiceImpl) GetBoard(ctx context.Context, userID, boardID int64) (*domain.Board, error) {
	stores := s.uow.Stores()

	board, err := ownedBoard(ctx, stores, userID, boardID)
	if err != nil {
		return nil, err
	}

	columns, err := stores.Columns.ListByBoard(ctx, board.ID)
	if err != nil {
		return nil, NewServiceError("board", "get", err)
	}
	cards, err := stores.Cards.ListByBoard(ctx, board.ID)
	if err != nil {
		return nil, NewServiceError("board", "get", err)
	}

	groupCards(columns, cards)
	board.Columns = columns
	return board, nil
}

// DeleteBoard implements BoardService.DeleteBoard
func (s *boardServiceImpl) DeleteBoard(ctx context.Context, userID, boardID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.uow.RunInTx(ctx, func(ctx context.Context, tx store.Stores) error {
		if _, err := ownedBoard(ctx, tx, userID, boardID); err != nil {
			return err
		}
		return tx.Boards.Delete(ctx, boardID)
	})
	if err != nil {
		return err
	}

	log.Info("board deleted", slog.Int64("board_id", boardID))
	return nil
}

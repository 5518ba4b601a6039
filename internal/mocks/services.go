package mocks

import (
	"context"

	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/service"
	"github.com/phrazzld/kanban-api/internal/service/bulk"
)

// MockUserService implements service.UserService for testing
type MockUserService struct {
	RegisterFn func(ctx context.Context, username, password string) (string, error)
	LoginFn    func(ctx context.Context, username, password string) (string, error)
}

var _ service.UserService = (*MockUserService)(nil)

// Register implements service.UserService
func (m *MockUserService) Register(ctx context.Context, username, password string) (string, error) {
	return m.RegisterFn(ctx, username, password)
}

// Login implements service.UserService
func (m *MockUserService) Login(ctx context.Context, username, password string) (string, error) {
	return m.LoginFn(ctx, username, password)
}

// MockBoardService implements service.BoardService for testing
type MockBoardService struct {
	ListBoardsFn  func(ctx context.Context, userID int64) ([]domain.Board, error)
	CreateBoardFn func(ctx context.Context, userID int64, name string) (*domain.Board, error)
	GetBoardFn    func(ctx context.Context, userID, boardID int64) (*domain.Board, error)
	DeleteBoardFn func(ctx context.Context, userID, boardID int64) error
}

var _ service.BoardService = (*MockBoardService)(nil)

// ListBoards implements service.BoardService
func (m *MockBoardService) ListBoards(ctx context.Context, userID int64) ([]domain.Board, error) {
	return m.ListBoardsFn(ctx, userID)
}

// CreateBoard implements service.BoardService
func (m *MockBoardService) CreateBoard(ctx context.Context, userID int64, name string) (*domain.Board, error) {
	return m.CreateBoardFn(ctx, userID, name)
}

// GetBoard implements service.BoardService
func (m *MockBoardService) GetBoard(ctx context.Context, userID, boardID int64) (*domain.Board, error) {
	return m.GetBoardFn(ctx, userID, boardID)
}

// DeleteBoard implements service.BoardService
func (m *MockBoardService) DeleteBoard(ctx context.Context, userID, boardID int64) error {
	return m.DeleteBoardFn(ctx, userID, boardID)
}

// MockColumnService implements service.ColumnService for testing
type MockColumnService struct {
	GetColumnFn    func(ctx context.Context, userID, columnID int64) (*domain.Column, error)
	CreateColumnFn func(ctx context.Context, userID int64, in service.CreateColumnInput) (*domain.Column, error)
	BulkUpdateFn   func(
		ctx context.Context,
		userID int64,
		boardID *int64,
		items []bulk.Item[domain.ColumnPatch],
	) ([]domain.Column, error)
}

var _ service.ColumnService = (*MockColumnService)(nil)

// GetColumn implements service.ColumnService
func (m *MockColumnService) GetColumn(ctx context.Context, userID, columnID int64) (*domain.Column, error) {
	return m.GetColumnFn(ctx, userID, columnID)
}

// CreateColumn implements service.ColumnService
func (m *MockColumnService) CreateColumn(
	ctx context.Context,
	userID int64,
	in service.CreateColumnInput,
) (*domain.Column, error) {
	return m.CreateColumnFn(ctx, userID, in)
}

// BulkUpdateColumns implements service.ColumnService
func (m *MockColumnService) BulkUpdateColumns(
	ctx context.Context,
	userID int64,
	boardID *int64,
	items []bulk.Item[domain.ColumnPatch],
) ([]domain.Column, error) {
	return m.BulkUpdateFn(ctx, userID, boardID, items)
}

// MockCardService implements service.CardService for testing
type MockCardService struct {
	GetCardFn    func(ctx context.Context, userID, cardID int64) (*domain.Card, error)
	CreateCardFn func(ctx context.Context, userID int64, in service.CreateCardInput) (*domain.Card, error)
	UpdateCardFn func(ctx context.Context, userID, cardID int64, patch domain.CardPatch) (*domain.Card, error)
	DeleteCardFn func(ctx context.Context, userID, cardID int64) error
	BulkUpdateFn func(
		ctx context.Context,
		userID int64,
		columnID *int64,
		items []bulk.Item[domain.CardPatch],
	) ([]domain.Card, error)
}

var _ service.CardService = (*MockCardService)(nil)

// GetCard implements service.CardService
func (m *MockCardService) GetCard(ctx context.Context, userID, cardID int64) (*domain.Card, error) {
	return m.GetCardFn(ctx, userID, cardID)
}

// CreateCard implements service.CardService
func (m *MockCardService) CreateCard(
	ctx context.Context,
	userID int64,
	in service.CreateCardInput,
) (*domain.Card, error) {
	return m.CreateCardFn(ctx, userID, in)
}

// UpdateCard implements service.CardService
func (m *MockCardService) UpdateCard(
	ctx context.Context,
	userID, cardID int64,
	patch domain.CardPatch,
) (*domain.Card, error) {
	return m.UpdateCardFn(ctx, userID, cardID, patch)
}

// DeleteCard implements service.CardService
func (m *MockCardService) DeleteCard(ctx context.Context, userID, cardID int64) error {
	return m.DeleteCardFn(ctx, userID, cardID)
}

// BulkUpdateCards implements service.CardService
func (m *MockCardService) BulkUpdateCards(
	ctx context.Context,
	userID int64,
	columnID *int64,
	items []bulk.Item[domain.CardPatch],
) ([]domain.Card, error) {
	return m.BulkUpdateFn(ctx, userID, columnID, items)
}

package service_test

import (
	"context"
	"testing"

	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/mocks"
	"github.com/phrazzld/kanban-api/internal/service"
	"github.com/phrazzld/kanban-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoardService(t *testing.T, uow store.UnitOfWork) service.BoardService {
	t.Helper()
	svc, err := service.NewBoardService(uow, discardLogger())
	require.NoError(t, err)
	return svc
}

func TestBoardService_CreateAndList(t *testing.T) {
	ctx := context.Background()
	uow := mocks.NewMemoryUnitOfWork()
	alice := uow.AddUser("alice", "h")
	bob := uow.AddUser("bob", "h")
	uow.AddBoard(bob, "Bob's board")
	svc := newBoardService(t, uow)

	first, err := svc.CreateBoard(ctx, alice, "Roadmap")
	require.NoError(t, err)
	second, err := svc.CreateBoard(ctx, alice, "Chores")
	require.NoError(t, err)

	boards, err := svc.ListBoards(ctx, alice)
	require.NoError(t, err)
	require.Len(t, boards, 2)
	assert.Equal(t, first.ID, boards[0].ID)
	assert.Equal(t, second.ID, boards[1].ID)
	for _, b := range boards {
		assert.Equal(t, alice, b.UserID)
	}

	_, err = svc.CreateBoard(ctx, alice, "  ")
	assert.ErrorIs(t, err, domain.ErrBoardNameEmpty)
}

func TestBoardService_ListEmpty(t *testing.T) {
	uow := mocks.NewMemoryUnitOfWork()
	alice := uow.AddUser("alice", "h")

	boards, err := newBoardService(t, uow).ListBoards(context.Background(), alice)

	require.NoError(t, err)
	assert.NotNil(t, boards)
	assert.Empty(t, boards)
}

func TestBoardService_GetBoardNestsOrderedChildren(t *testing.T) {
	uow := mocks.NewMemoryUnitOfWork()
	alice := uow.AddUser("alice", "h")
	board := uow.AddBoard(alice, "Roadmap")
	done := uow.AddColumn(board.ID, "Done", 2)
	todo := uow.AddColumn(board.ID, "Todo", 1)
	empty := uow.AddColumn(board.ID, "Later", 3)
	c2 := uow.AddCard(todo.ID, "second", 5)
	c1 := uow.AddCard(todo.ID, "first", 1)
	c3 := uow.AddCard(done.ID, "shipped", 0)

	got, err := newBoardService(t, uow).GetBoard(context.Background(), alice, board.ID)

	require.NoError(t, err)
	require.Len(t, got.Columns, 3)
	assert.Equal(t, []int64{todo.ID, done.ID, empty.ID},
		[]int64{got.Columns[0].ID, got.Columns[1].ID, got.Columns[2].ID})
	require.Len(t, got.Columns[0].Cards, 2)
	assert.Equal(t, c1.ID, got.Columns[0].Cards[0].ID)
	assert.Equal(t, c2.ID, got.Columns[0].Cards[1].ID)
	require.Len(t, got.Columns[1].Cards, 1)
	assert.Equal(t, c3.ID, got.Columns[1].Cards[0].ID)
	assert.NotNil(t, got.Columns[2].Cards)
	assert.Empty(t, got.Columns[2].Cards)
}

func TestBoardService_ForeignBoardIsNotFound(t *testing.T) {
	ctx := context.Background()
	uow := mocks.NewMemoryUnitOfWork()
	alice := uow.AddUser("alice", "h")
	bob := uow.AddUser("bob", "h")
	board := uow.AddBoard(alice, "Private")
	svc := newBoardService(t, uow)

	_, err := svc.GetBoard(ctx, bob, board.ID)
	assert.ErrorIs(t, err, store.ErrBoardNotFound)

	err = svc.DeleteBoard(ctx, bob, board.ID)
	assert.ErrorIs(t, err, store.ErrBoardNotFound)
	_, ok := uow.Board(board.ID)
	assert.True(t, ok)
}

func TestBoardService_DeleteCascades(t *testing.T) {
	uow := mocks.NewMemoryUnitOfWork()
	alice := uow.AddUser("alice", "h")
	board := uow.AddBoard(alice, "Roadmap")
	column := uow.AddColumn(board.ID, "Todo", 1)
	card := uow.AddCard(column.ID, "task", 1)

	err := newBoardService(t, uow).DeleteBoard(context.Background(), alice, board.ID)

	require.NoError(t, err)
	_, ok := uow.Board(board.ID)
	assert.False(t, ok)
	_, ok = uow.Column(column.ID)
	assert.False(t, ok)
	_, ok = uow.Card(card.ID)
	assert.False(t, ok)
}

func TestBoardService_MissingBoard(t *testing.T) {
	uow := mocks.NewMemoryUnitOfWork()
	alice := uow.AddUser("alice", "h")

	_, err := newBoardService(t, uow).GetBoard(context.Background(), alice, 999)

	assert.ErrorIs(t, err, store.ErrNotFound)
}

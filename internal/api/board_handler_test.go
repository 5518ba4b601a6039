package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/mocks"
	"github.com/phrazzld/kanban-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardHandler_GetBoard(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	boards := &mocks.MockBoardService{
		GetBoardFn: func(_ context.Context, userID, boardID int64) (*domain.Board, error) {
			if userID != 1 || boardID != 10 {
				return nil, store.ErrBoardNotFound
			}
			return &domain.Board{
				ID: 10, Name: "Roadmap", UserID: 1, CreatedAt: now, UpdatedAt: now,
				Columns: []domain.Column{
					{ID: 20, Name: "Todo", PositionID: 1, BoardID: 10, Cards: []domain.Card{
						{ID: 30, Task: "ship", PositionID: 1, ColumnID: 20},
					}},
					{ID: 21, Name: "Done", PositionID: 2, BoardID: 10, Cards: []domain.Card{}},
				},
			}, nil
		},
	}
	handler := NewBoardHandler(boards, testLogger())

	t.Run("nested children", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.GetBoard(rec, newRequest(http.MethodGet, "/api/boards/10/", "", 1, "id", "10"))

		require.Equal(t, http.StatusOK, rec.Code)
		var body BoardDetailResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, int64(10), body.ID)
		require.Len(t, body.Columns, 2)
		require.Len(t, body.Columns[0].Cards, 1)
		assert.Equal(t, "ship", body.Columns[0].Cards[0].Task)
		assert.Contains(t, rec.Body.String(), `"cards":[]`)
	})

	t.Run("foreign board", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.GetBoard(rec, newRequest(http.MethodGet, "/api/boards/10/", "", 2, "id", "10"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Board not found", decodeError(t, rec).Error)
	})

	t.Run("invalid id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.GetBoard(rec, newRequest(http.MethodGet, "/api/boards/abc/", "", 1, "id", "abc"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("no user", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.GetBoard(rec, newRequest(http.MethodGet, "/api/boards/10/", "", 0, "id", "10"))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestBoardHandler_ListCreateDelete(t *testing.T) {
	t.Parallel()

	var deleted int64
	boards := &mocks.MockBoardService{
		ListBoardsFn: func(_ context.Context, userID int64) ([]domain.Board, error) {
			return []domain.Board{{ID: 1, Name: "A", UserID: userID}, {ID: 2, Name: "B", UserID: userID}}, nil
		},
		CreateBoardFn: func(_ context.Context, userID int64, name string) (*domain.Board, error) {
			board, err := domain.NewBoard(userID, name)
			if err != nil {
				return nil, err
			}
			board.ID = 3
			return board, nil
		},
		DeleteBoardFn: func(_ context.Context, _, boardID int64) error {
			deleted = boardID
			return nil
		},
	}
	handler := NewBoardHandler(boards, testLogger())

	rec := httptest.NewRecorder()
	handler.ListBoards(rec, newRequest(http.MethodGet, "/api/boards/", "", 5))
	require.Equal(t, http.StatusOK, rec.Code)
	var list []BoardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 2)
	assert.NotContains(t, rec.Body.String(), "columns")

	rec = httptest.NewRecorder()
	handler.CreateBoard(rec, newRequest(http.MethodPost, "/api/boards/", `{"name":"Roadmap"}`, 5))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"columns":[]`)

	rec = httptest.NewRecorder()
	handler.CreateBoard(rec, newRequest(http.MethodPost, "/api/boards/", `{"name":""}`, 5))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	handler.DeleteBoard(rec, newRequest(http.MethodDelete, "/api/boards/9/", "", 5, "id", "9"))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(9), deleted)
}

func TestNewBoardHandler_NilLoggerPanics(t *testing.T) {
	assert.Panics(t, func() { NewBoardHandler(&mocks.MockBoardService{}, nil) })
}

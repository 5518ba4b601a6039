package service

import (
	"context"
	"errors"

	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/store"
)

// ownedBoard returns the board if it exists and belongs to userID.
func ownedBoard(ctx context.Context, s store.Stores, userID, boardID int64) (*domain.Board, error) {
	board, err := s.Boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board.UserID != userID {
		return nil, store.ErrBoardNotFound
	}
	return board, nil
}

// ownedColumn returns the column if its board belongs to userID.
func ownedColumn(ctx context.Context, s store.Stores, userID, columnID int64) (*domain.Column, error) {
	column, err := s.Columns.GetByID(ctx, columnID)
	if err != nil {
		return nil, err
	}
	if _, err := ownedBoard(ctx, s, userID, column.BoardID); err != nil {
		if errors.Is(err, store.ErrBoardNotFound) {
			return nil, store.ErrColumnNotFound
		}
		return nil, err
	}
	return column, nil
}

// ownedCard returns the card if its column's board belongs to userID.
func ownedCard(ctx context.Context, s store.Stores, userID, cardID int64) (*domain.Card, error) {
	card, err := s.Cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if _, err := ownedColumn(ctx, s, userID, card.ColumnID); err != nil {
		if errors.Is(err, store.ErrColumnNotFound) {
			return nil, store.ErrCardNotFound
		}
		return nil, err
	}
	return card, nil
}

// groupCards attaches cards to their columns, keeping the order of both.
// Every column gets a non-nil Cards slice.
func groupCards(columns []domain.Column, cards []domain.Card) {
	index := make(map[int64]int, len(columns))
	for i := range columns {
		columns[i].Cards = []domain.Card{}
		index[columns[i].ID] = i
	}
	for _, card := range cards {
		if i, ok := index[card.ColumnID]; ok {
			columns[i].Cards = append(columns[i].Cards, card)
		}
	}
}

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/phrazzld/kanban-api/internal/api/shared"
	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/service/bulk"
)

// RegisterRequest defines the payload for the user registration endpoint.
// Username and password rules are enforced by the domain.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned by registration and login.
type TokenResponse struct {
	Token string `json:"token"`
}

// CreateBoardRequest defines the payload for creating a board.
type CreateBoardRequest struct {
	Name string `json:"name" validate:"required"`
}

// CreateColumnRequest defines the payload for creating a column.
type CreateColumnRequest struct {
	Name       string `json:"name"        validate:"required"`
	PositionID *int   `json:"position_id" validate:"required"`
	BoardID    int64  `json:"board_id"    validate:"required,gt=0"`
}

// CreateCardRequest defines the payload for creating a card.
type CreateCardRequest struct {
	Task       string `json:"task"        validate:"required"`
	PositionID *int   `json:"position_id" validate:"required"`
	ColumnID   int64  `json:"column_id"   validate:"required,gt=0"`
}

// UpdateCardRequest is a partial card update. Absent fields are unchanged.
type UpdateCardRequest struct {
	Task       *string `json:"task"`
	PositionID *int    `json:"position_id"`
	ColumnID   *int64  `json:"column_id"`
}

// Patch converts the request to a domain.CardPatch.
func (r UpdateCardRequest) Patch() domain.CardPatch {
	return domain.CardPatch{Task: r.Task, PositionID: r.PositionID, ColumnID: r.ColumnID}
}

// CardItemRequest is one entry of a bulk card request.
type CardItemRequest struct {
	ID         int64   `json:"id"`
	Task       *string `json:"task"`
	PositionID *int    `json:"position_id"`
	ColumnID   *int64  `json:"column_id"`
	Delete     bool    `json:"delete"`
}

func (i CardItemRequest) item() bulk.Item[domain.CardPatch] {
	return bulk.Item[domain.CardPatch]{
		ID:     i.ID,
		Delete: i.Delete,
		Patch:  domain.CardPatch{Task: i.Task, PositionID: i.PositionID, ColumnID: i.ColumnID},
	}
}

// ColumnItemRequest is one entry of a bulk column request.
type ColumnItemRequest struct {
	ID         int64   `json:"id"`
	Name       *string `json:"name"`
	PositionID *int    `json:"position_id"`
	BoardID    *int64  `json:"board_id"`
	Delete     bool    `json:"delete"`
}

func (i ColumnItemRequest) item() bulk.Item[domain.ColumnPatch] {
	return bulk.Item[domain.ColumnPatch]{
		ID:     i.ID,
		Delete: i.Delete,
		Patch:  domain.ColumnPatch{Name: i.Name, PositionID: i.PositionID, BoardID: i.BoardID},
	}
}

// decodeBulkItems reads a bulk body: either a JSON array of items or an
// object holding the array under key.
func decodeBulkItems[T any](r *http.Request, key string) ([]T, error) {
	var raw json.RawMessage
	if err := shared.DecodeJSON(r, &raw); err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, err
		}
		inner, ok := wrapped[key]
		if !ok {
			return nil, domain.NewValidationError(key, fmt.Sprintf("body must be a list or an object with %q", key))
		}
		trimmed = inner
	}

	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, domain.NewValidationError(key, "expected a list of items")
	}

	var items []T
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func toCardItems(in []CardItemRequest) []bulk.Item[domain.CardPatch] {
	items := make([]bulk.Item[domain.CardPatch], len(in))
	for i, req := range in {
		items[i] = req.item()
	}
	return items
}

func toColumnItems(in []ColumnItemRequest) []bulk.Item[domain.ColumnPatch] {
	items := make([]bulk.Item[domain.ColumnPatch], len(in))
	for i, req := range in {
		items[i] = req.item()
	}
	return items
}

// BoardResponse is a board without children.
type BoardResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BoardDetailResponse is a board with its columns and their cards.
type BoardDetailResponse struct {
	BoardResponse
	Columns []ColumnDetailResponse `json:"columns"`
}

// ColumnResponse is a column without cards.
type ColumnResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	PositionID int       `json:"position_id"`
	BoardID    int64     `json:"board_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ColumnDetailResponse is a column with its cards.
type ColumnDetailResponse struct {
	ColumnResponse
	Cards []CardResponse `json:"cards"`
}

// CardResponse is a single card.
type CardResponse struct {
	ID         int64     `json:"id"`
	Task       string    `json:"task"`
	PositionID int       `json:"position_id"`
	ColumnID   int64     `json:"column_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func boardToResponse(b *domain.Board) BoardResponse {
	return BoardResponse{
		ID:        b.ID,
		Name:      b.Name,
		UserID:    b.UserID,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func boardToDetailResponse(b *domain.Board) BoardDetailResponse {
	columns := make([]ColumnDetailResponse, len(b.Columns))
	for i := range b.Columns {
		columns[i] = columnToDetailResponse(&b.Columns[i])
	}
	return BoardDetailResponse{BoardResponse: boardToResponse(b), Columns: columns}
}

func columnToResponse(c *domain.Column) ColumnResponse {
	return ColumnResponse{
		ID:         c.ID,
		Name:       c.Name,
		PositionID: c.PositionID,
		BoardID:    c.BoardID,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func columnToDetailResponse(c *domain.Column) ColumnDetailResponse {
	return ColumnDetailResponse{ColumnResponse: columnToResponse(c), Cards: cardsToResponse(c.Cards)}
}

func cardToResponse(c *domain.Card) CardResponse {
	return CardResponse{
		ID:         c.ID,
		Task:       c.Task,
		PositionID: c.PositionID,
		ColumnID:   c.ColumnID,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func cardsToResponse(cards []domain.Card) []CardResponse {
	out := make([]CardResponse, len(cards))
	for i := range cards {
		out[i] = cardToResponse(&cards[i])
	}
	return out
}

package domain

import (
	"strings"
	"time"
)

// MaxNameLength bounds board and column names.
const MaxNameLength = 255

// Board validation errors
var (
	ErrBoardNameEmpty   = NewValidationError("name", "board name cannot be empty")
	ErrBoardNameTooLong = NewValidationError("name", "board name must be at most 255 characters long")
	ErrBoardUserIDEmpty = NewValidationError("user_id", "board user ID cannot be empty")
)

// Board is a named collection of ordered columns owned by one user.
// Columns is only populated by reads that include children and is left out
// of the entity's JSON; API responses render it.
type Board struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	UserID    int64     `json:"user_id"`
	Columns   []Column  `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBoard creates a new Board owned by userID.
func NewBoard(userID int64, name string) (*Board, error) {
	now := time.Now().UTC()
	board := &Board{
		Name:      name,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := board.Validate(); err != nil {
		return nil, err
	}

	return board, nil
}

// Validate checks if the Board has valid data.
func (b *Board) Validate() error {
	if b.UserID <= 0 {
		return ErrBoardUserIDEmpty
	}
	if strings.TrimSpace(b.Name) == "" {
		return ErrBoardNameEmpty
	}
	if len([]rune(b.Name)) > MaxNameLength {
		return ErrBoardNameTooLong
	}
	return nil
}

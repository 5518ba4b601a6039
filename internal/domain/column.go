package domain

import (
	"math"
	"strings"
	"time"
)

// Column validation errors
var (
	ErrColumnNameEmpty     = NewValidationError("name", "column name cannot be empty")
	ErrColumnNameTooLong   = NewValidationError("name", "column name must be at most 255 characters long")
	ErrColumnBoardIDEmpty  = NewValidationError("board_id", "column board ID cannot be empty")
	ErrColumnBoardChanged  = NewValidationError("board_id", "columns cannot move between boards")
	ErrColumnPositionRange = NewValidationError("position_id", "column position must fit in a 32-bit integer")
)

// ValidPosition reports whether pos fits the INTEGER position_id columns.
func ValidPosition(pos int) bool {
	return pos >= math.MinInt32 && pos <= math.MaxInt32
}

// Column is an ordered list of cards within a board.
// PositionID is caller-assigned and neither unique nor contiguous. Cards,
// like Board.Columns, is rendered by API responses only.
type Column struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	PositionID int       `json:"position_id"`
	BoardID    int64     `json:"board_id"`
	Cards      []Card    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewColumn creates a new Column on boardID.
func NewColumn(boardID int64, name string, positionID int) (*Column, error) {
	now := time.Now().UTC()
	column := &Column{
		Name:       name,
		PositionID: positionID,
		BoardID:    boardID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := column.Validate(); err != nil {
		return nil, err
	}

	return column, nil
}

// Validate checks if the Column has valid data.
func (c *Column) Validate() error {
	if c.BoardID <= 0 {
		return ErrColumnBoardIDEmpty
	}
	if strings.TrimSpace(c.Name) == "" {
		return ErrColumnNameEmpty
	}
	if len([]rune(c.Name)) > MaxNameLength {
		return ErrColumnNameTooLong
	}
	if !ValidPosition(c.PositionID) {
		return ErrColumnPositionRange
	}
	return nil
}

// ColumnPatch holds optional field changes for a column. Nil fields are left unchanged.
type ColumnPatch struct {
	Name       *string
	PositionID *int
	BoardID    *int64
}

// Merge overlays next on p; fields set in next win.
func (p ColumnPatch) Merge(next ColumnPatch) ColumnPatch {
	if next.Name != nil {
		p.Name = next.Name
	}
	if next.PositionID != nil {
		p.PositionID = next.PositionID
	}
	if next.BoardID != nil {
		p.BoardID = next.BoardID
	}
	return p
}

// Apply updates the column with the patch and validates the result.
// A BoardID different from the current board is rejected.
func (c *Column) Apply(p ColumnPatch) error {
	if p.BoardID != nil && *p.BoardID != c.BoardID {
		return ErrColumnBoardChanged
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.PositionID != nil {
		c.PositionID = *p.PositionID
	}
	if err := c.Validate(); err != nil {
		return err
	}
	c.UpdatedAt = time.Now().UTC()
	return nil
}

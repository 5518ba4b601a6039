package domain

import (
	"strings"
	"time"
)

// MaxTaskLength bounds card task text.
const MaxTaskLength = 2000

// Card-specific validation errors
var (
	ErrCardTaskEmpty     = NewValidationError("task", "card task cannot be empty")
	ErrCardTaskTooLong   = NewValidationError("task", "card task must be at most 2000 characters long")
	ErrCardColumnIDEmpty = NewValidationError("column_id", "card column ID cannot be empty")
	ErrCardPositionRange = NewValidationError("position_id", "card position must fit in a 32-bit integer")
)

// Card is a single task within a column. A card may move between columns
// by changing ColumnID.
type Card struct {
	ID         int64     `json:"id"`
	Task       string    `json:"task"`
	PositionID int       `json:"position_id"`
	ColumnID   int64     `json:"column_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewCard creates a new Card in columnID.
func NewCard(columnID int64, task string, positionID int) (*Card, error) {
	now := time.Now().UTC()
	card := &Card{
		Task:       task,
		PositionID: positionID,
		ColumnID:   columnID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
func (c *Card) Validate() error {
	if c.ColumnID <= 0 {
		return ErrCardColumnIDEmpty
	}
	if strings.TrimSpace(c.Task) == "" {
		return ErrCardTaskEmpty
	}
	if len([]rune(c.Task)) > MaxTaskLength {
		return ErrCardTaskTooLong
	}
	if !ValidPosition(c.PositionID) {
		return ErrCardPositionRange
	}
	return nil
}

// CardPatch holds optional field changes for a card. Nil fields are left unchanged.
type CardPatch struct {
	Task       *string
	PositionID *int
	ColumnID   *int64
}

// Merge overlays next on p; fields set in next win.
func (p CardPatch) Merge(next CardPatch) CardPatch {
	if next.Task != nil {
		p.Task = next.Task
	}
	if next.PositionID != nil {
		p.PositionID = next.PositionID
	}
	if next.ColumnID != nil {
		p.ColumnID = next.ColumnID
	}
	return p
}

// IsEmpty reports whether the patch changes nothing.
func (p CardPatch) IsEmpty() bool {
	return p.Task == nil && p.PositionID == nil && p.ColumnID == nil
}

// Apply updates the card with the patch and validates the result.
func (c *Card) Apply(p CardPatch) error {
	if p.Task != nil {
		c.Task = *p.Task
	}
	if p.PositionID != nil {
		c.PositionID = *p.PositionID
	}
	if p.ColumnID != nil {
		c.ColumnID = *p.ColumnID
	}
	if err := c.Validate(); err != nil {
		return err
	}
	c.UpdatedAt = time.Now().UTC()
	return nil
}

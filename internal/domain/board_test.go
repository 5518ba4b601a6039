package domain

import (
	"strings"
	"testing"
)

func TestNewBoard(t *testing.T) {
	board, err := NewBoard(1, "Sprint 12")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if board.Name != "Sprint 12" || board.UserID != 1 {
		t.Errorf("Unexpected board %+v", board)
	}

	if _, err := NewBoard(0, "x"); err != ErrBoardUserIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrBoardUserIDEmpty, err)
	}
	if _, err := NewBoard(1, "   "); err != ErrBoardNameEmpty {
		t.Errorf("Expected error %v, got %v", ErrBoardNameEmpty, err)
	}
	if _, err := NewBoard(1, strings.Repeat("n", MaxNameLength+1)); err != ErrBoardNameTooLong {
		t.Errorf("Expected error %v, got %v", ErrBoardNameTooLong, err)
	}
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/kanban-api/internal/api/shared"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/phrazzld/kanban-api/internal/service"
)

// BoardHandler handles board requests.
type BoardHandler struct {
	boardService service.BoardService
	logger       *slog.Logger
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(boardService service.BoardService, logger *slog.Logger) *BoardHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for BoardHandler")
	}
	return &BoardHandler{
		boardService: boardService,
		logger:       logger.With(slog.String("component", "board_handler")),
	}
}

// ListBoards handles GET /api/boards/.
func (h *BoardHandler) ListBoards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	boards, err := h.boardService.ListBoards(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list boards")
		return
	}
	response := make([]BoardResponse, len(boards))
	for i := range boards {
		response[i] = boardToResponse(&boards[i])
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// CreateBoard handles POST /api/boards/.
func (h *BoardHandler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req CreateBoardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	board, err := h.boardService.CreateBoard(r.Context(), userID, req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create board")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, boardToDetailResponse(board))
}

// GetBoard handles GET /api/boards/{id}/. The board comes back with its
// columns, each carrying its cards.
func (h *BoardHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, boardID, ok := handleUserIDAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	board, err := h.boardService.GetBoard(r.Context(), userID, boardID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get board")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, boardToDetailResponse(board))
}

// DeleteBoard handles DELETE /api/boards/{id}/.
func (h *BoardHandler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, boardID, ok := handleUserIDAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.boardService.DeleteBoard(r.Context(), userID, boardID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete board")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

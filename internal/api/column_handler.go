package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/kanban-api/internal/api/shared"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/phrazzld/kanban-api/internal/service"
)

// ColumnHandler handles column requests.
type ColumnHandler struct {
	columnService service.ColumnService
	logger        *slog.Logger
}

// NewColumnHandler creates a new ColumnHandler.
func NewColumnHandler(columnService service.ColumnService, logger *slog.Logger) *ColumnHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ColumnHandler")
	}
	return &ColumnHandler{
		columnService: columnService,
		logger:        logger.With(slog.String("component", "column_handler")),
	}
}

// GetColumn handles GET /api/columns/{id}/.
func (h *ColumnHandler) GetColumn(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, columnID, ok := handleUserIDAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	column, err := h.columnService.GetColumn(r.Context(), userID, columnID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get column")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, columnToDetailResponse(column))
}

// CreateColumn handles POST /api/columns/.
func (h *ColumnHandler) CreateColumn(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req CreateColumnRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	column, err := h.columnService.CreateColumn(r.Context(), userID, service.CreateColumnInput{
		Name:       req.Name,
		PositionID: *req.PositionID,
		BoardID:    req.BoardID,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create column")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, columnToDetailResponse(column))
}

// BulkUpdateColumns handles PATCH and PUT /api/columns/. The optional
// board_id query parameter limits the batch to one board.
func (h *ColumnHandler) BulkUpdateColumns(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	boardID, err := getOptionalQueryID(r, "board_id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	reqs, err := decodeBulkItems[ColumnItemRequest](r, "columns")
	if err != nil {
		respondInvalidBody(w, r, err)
		return
	}

	columns, err := h.columnService.BulkUpdateColumns(r.Context(), userID, boardID, toColumnItems(reqs))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update columns")
		return
	}

	response := make([]ColumnResponse, len(columns))
	for i := range columns {
		response[i] = columnToResponse(&columns[i])
	}
	log.Debug("columns updated", slog.Int("items", len(reqs)), slog.Int("survivors", len(columns)))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

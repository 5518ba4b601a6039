package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/kanban-api/internal/api/shared"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/phrazzld/kanban-api/internal/service"
)

// CardHandler handles card-related HTTP requests
type CardHandler struct {
	cardService service.CardService
	logger      *slog.Logger
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(cardService service.CardService, logger *slog.Logger) *CardHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CardHandler")
	}
	return &CardHandler{
		cardService: cardService,
		logger:      logger.With(slog.String("component", "card_handler")),
	}
}

// GetCard handles GET /api/cards/{id}/.
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, cardID, ok := handleUserIDAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	card, err := h.cardService.GetCard(r.Context(), userID, cardID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get card")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card))
}

// CreateCard handles POST /api/cards/.
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req CreateCardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	card, err := h.cardService.CreateCard(r.Context(), userID, service.CreateCardInput{
		Task:       req.Task,
		PositionID: *req.PositionID,
		ColumnID:   req.ColumnID,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create card")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, cardToResponse(card))
}

// UpdateCard handles PATCH /api/cards/{id}/.
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, cardID, ok := handleUserIDAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateCardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	card, err := h.cardService.UpdateCard(r.Context(), userID, cardID, req.Patch())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update card")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card))
}

// DeleteCard handles DELETE /api/cards/{id}/.
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, cardID, ok := handleUserIDAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.cardService.DeleteCard(r.Context(), userID, cardID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete card")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BulkUpdateCards handles PATCH and PUT /api/cards/. The optional column_id
// query parameter limits the batch to one column.
func (h *CardHandler) BulkUpdateCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	columnID, err := getOptionalQueryID(r, "column_id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	reqs, err := decodeBulkItems[CardItemRequest](r, "cards")
	if err != nil {
		respondInvalidBody(w, r, err)
		return
	}

	cards, err := h.cardService.BulkUpdateCards(r.Context(), userID, columnID, toCardItems(reqs))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update cards")
		return
	}

	log.Debug("cards updated", slog.Int("items", len(reqs)), slog.Int("survivors", len(cards)))
	shared.RespondWithJSON(w, r, http.StatusOK, cardsToResponse(cards))
}

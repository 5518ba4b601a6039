package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/kanban-api/internal/api/shared"
	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
)

// parseID parses a positive int64 id.
func parseID(name, value string) (int64, error) {
	if value == "" {
		return 0, domain.NewValidationError(name, "is required")
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(name, "must be a positive integer")
	}
	return id, nil
}

// getOptionalQueryID returns the query parameter name as an id, or nil when
// it is absent.
func getOptionalQueryID(r *http.Request, name string) (*int64, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil, nil
	}
	id, err := parseID(name, value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// requireUserID returns the authenticated user id or writes a 401.
func requireUserID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (int64, bool) {
	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, errUnauthenticated, "")
		return 0, false
	}
	return userID, true
}

// handleUserIDAndPathID extracts the user id from the context and the id path
// parameter. It writes an error response and returns false if either is
// missing or invalid.
func handleUserIDAndPathID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	log *slog.Logger,
) (int64, int64, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return 0, 0, false
	}

	raw := chi.URLParam(r, paramName)
	pathID, err := parseID(paramName, raw)
	if err != nil {
		log.Warn("invalid path parameter", slog.String("param_name", paramName), slog.String("value", raw))
		HandleAPIError(w, r, err, "")
		return 0, 0, false
	}

	return userID, pathID, true
}

// decodeAndValidate decodes the body into req and validates it, writing a 400
// on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := shared.DecodeJSON(r, req); err != nil {
		respondInvalidBody(w, r, err)
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}

// respondInvalidBody writes a 400 for a body that could not be decoded.
func respondInvalidBody(w http.ResponseWriter, r *http.Request, err error) {
	message := "Invalid request format"
	if MapErrorToStatusCode(err) == http.StatusBadRequest {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, message, err)
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/kanban-api/internal/api/shared"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/phrazzld/kanban-api/internal/service"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(userService service.UserService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		userService: userService,
		logger:      logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /api/users/. It creates the account and responds
// with a token for it.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	token, err := h.userService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, TokenResponse{Token: token})
}

// Login handles POST /api/auth/login/.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	token, err := h.userService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if MapErrorToStatusCode(err) == http.StatusUnauthorized {
			log.Debug("login rejected")
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, GetSafeErrorMessage(err), err,
				shared.WithElevatedLogLevel())
			return
		}
		HandleAPIError(w, r, err, "Failed to authenticate user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{Token: token})
}

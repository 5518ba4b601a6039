package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/kanban-api/internal/api/shared"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/phrazzld/kanban-api/internal/service/auth"
)

// authSchemes are the accepted Authorization header schemes. "JWT" is kept
// for older front ends.
var authSchemes = map[string]bool{
	"bearer": true,
	"jwt":    true,
}

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate validates the token in the Authorization header and stores
// the user id in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			if r.Header.Get("Authorization") == "" {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			} else {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			}
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Token expired", err)
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenNotYetValid):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid token", err)
			default:
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Authentication error", err)
			}
			return
		}

		ctx := shared.WithUserID(r.Context(), claims.UserID)
		log := logger.FromContextOrDefault(ctx, slog.Default())
		ctx = logger.WithLogger(ctx, log.With(slog.Int64("user_id", claims.UserID)))

		log.Debug("request authenticated", slog.Int64("user_id", claims.UserID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token from "<scheme> <token>".
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !authSchemes[strings.ToLower(scheme)] {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.Contains(token, " ") {
		return "", false
	}
	return token, true
}

// GetUserID extracts the user id from the request context.
func GetUserID(r *http.Request) (int64, bool) {
	return shared.UserIDFromContext(r.Context())
}

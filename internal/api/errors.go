package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/kanban-api/internal/api/shared"
	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/service"
	"github.com/phrazzld/kanban-api/internal/service/auth"
	"github.com/phrazzld/kanban-api/internal/store"
)

// errUnauthenticated is used when a protected handler runs without a user id.
var errUnauthenticated = errors.New("request is not authenticated")

// MapErrorToStatusCode maps internal errors to HTTP status codes.
func MapErrorToStatusCode(err error) int {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, errUnauthenticated):
		return http.StatusUnauthorized

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrUsernameExists),
		errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrIntegrity):
		return http.StatusConflict

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity),
		errors.As(err, &syntaxErr),
		errors.As(err, &typeErr):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid username or password"
	case errors.Is(err, errUnauthenticated):
		return "Authentication required"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrBoardNotFound):
		return "Board not found"
	case errors.Is(err, store.ErrColumnNotFound):
		return "Column not found"
	case errors.Is(err, store.ErrCardNotFound):
		return "Card not found"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrUsernameExists):
		return "Username already exists"
	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"
	case errors.Is(err, store.ErrIntegrity):
		return "Operation conflicts with related data"

	case errors.As(err, &validationErr):
		return validationErr.Error()
	case errors.As(err, &typeErr):
		if typeErr.Field != "" {
			return fmt.Sprintf("Invalid %s: wrong type", typeErr.Field)
		}
		return "Invalid request format"
	case errors.As(err, &syntaxErr):
		return "Invalid request format"
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Validation error"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the error response for err. A non-empty
// fallbackMsg replaces the generic message of 500 responses.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallbackMsg string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallbackMsg != "" {
		message = fallbackMsg
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError turns validator errors into a short message naming
// the first failing field.
func SanitizeValidationError(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "Validation error"
	}
	fe := fieldErrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "gt", "gte":
		return "must be positive"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// The API layer maps them to HTTP status codes.
var (
	// ErrInvalidCredentials is returned by Login when the username is unknown
	// or the password does not match; both cases return the same error.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ServiceError adds the failing service operation to an underlying error.
type ServiceError struct {
	Service   string
	Operation string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s service %s failed: %v", e.Service, e.Operation, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, operation string, err error) *ServiceError {
	return &ServiceError{Service: service, Operation: operation, Err: err}
}

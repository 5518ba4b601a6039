package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher turns a plaintext password into a storable hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// PasswordVerifier defines the interface for comparing passwords.
type PasswordVerifier interface {
	// Compare returns nil when password matches hashedPassword and
	// ErrPasswordMismatch when it does not.
	Compare(hashedPassword, password string) error
}

// BcryptHasher implements PasswordHasher and PasswordVerifier using bcrypt.
type BcryptHasher struct {
	cost int
}

var (
	_ PasswordHasher   = (*BcryptHasher)(nil)
	_ PasswordVerifier = (*BcryptHasher)(nil)
)

// NewBcryptHasher creates a BcryptHasher. Costs outside bcrypt's range fall
// back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash implements PasswordHasher.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Compare implements PasswordVerifier.
func (h *BcryptHasher) Compare(hashedPassword, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return err
}

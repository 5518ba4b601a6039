package mocks

import "github.com/phrazzld/kanban-api/internal/service/auth"

// MockPasswordVerifier implements auth.PasswordVerifier for testing
type MockPasswordVerifier struct {
	// ShouldSucceed determines whether the password comparison should succeed
	ShouldSucceed bool

	// CompareFn allows for custom comparison logic in tests
	CompareFn func(hashedPassword, password string) error

	// CompareCalledWith stores the arguments passed to Compare for verification
	CompareCalledWith struct {
		HashedPassword string
		Password       string
	}

	// CompareCallCount tracks how many times Compare was called
	CompareCallCount int
}

// Compare implements the auth.PasswordVerifier interface
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.CompareCalledWith.HashedPassword = hashedPassword
	m.CompareCalledWith.Password = password
	m.CompareCallCount++

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.ShouldSucceed {
		return nil
	}
	return auth.ErrPasswordMismatch
}

// MockPasswordHasher implements auth.PasswordHasher for testing.
// By default it prefixes the password with "hashed:".
type MockPasswordHasher struct {
	HashFn func(password string) (string, error)
}

// Hash implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return "hashed:" + password, nil
}

package domain

import (
	"strings"
	"time"
)

// Password and username limits.
const (
	MinPasswordLength = 6
	// bcrypt ignores bytes beyond 72.
	MaxPasswordLength = 72
	MaxUsernameLength = 150
)

// Common validation errors
var (
	ErrEmptyUsername       = NewValidationError("username", "username cannot be empty")
	ErrUsernameTooLong     = NewValidationError("username", "username must be at most 150 characters long")
	ErrInvalidUsername     = NewValidationError("username", "username may contain only letters, digits and @.+-_")
	ErrEmptyPassword       = NewValidationError("password", "password cannot be empty")
	ErrPasswordTooShort    = NewValidationError("password", "password must be at least 6 characters long")
	ErrPasswordTooLong     = NewValidationError("password", "password must be at most 72 characters long")
	ErrEmptyHashedPassword = NewValidationError("password", "hashed password cannot be empty")
)

// User represents a registered account. Users own boards.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Password       string    `json:"-"` // Plaintext password, used temporarily during registration
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given username and plaintext password.
// The ID is assigned by the store on insert.
//
// NOTE: the caller is responsible for hashing the password before storing the user.
func NewUser(username, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		Username:  username,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Either a plaintext password (registration) or a hash (persisted user) must be present.
func (u *User) Validate() error {
	if err := ValidateUsername(u.Username); err != nil {
		return err
	}

	if u.Password != "" {
		return ValidatePassword(u.Password)
	}

	if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}

// ValidateUsername checks length and the allowed character set.
func ValidateUsername(username string) error {
	if username == "" {
		return ErrEmptyUsername
	}
	if len([]rune(username)) > MaxUsernameLength {
		return ErrUsernameTooLong
	}
	for _, r := range username {
		if !isUsernameRune(r) {
			return ErrInvalidUsername
		}
	}
	return nil
}

// ValidatePassword checks the plaintext password length in bytes.
func ValidatePassword(password string) error {
	switch {
	case password == "":
		return ErrEmptyPassword
	case len(password) < MinPasswordLength:
		return ErrPasswordTooShort
	case len(password) > MaxPasswordLength:
		return ErrPasswordTooLong
	}
	return nil
}

func isUsernameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	default:
		return strings.ContainsRune("@.+-_", r)
	}
}

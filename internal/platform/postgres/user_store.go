package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/phrazzld/kanban-api/internal/redact"
	"github.com/phrazzld/kanban-api/internal/store"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{db: tx, logger: s.logger}
}

// Create implements store.UserStore.Create
// Returns store.ErrUsernameExists when the username is taken.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if user.HashedPassword == "" {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrEmptyHashedPassword)
	}
	if err := domain.ValidateUsername(user.Username); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO users (username, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		user.Username, user.HashedPassword, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("username already exists")
			return store.ErrUsernameExists
		}
		log.Error("failed to create user", slog.String("error", redact.Error(err)))
		return MapError(err)
	}

	// The plaintext never leaves this call.
	user.Password = ""

	log.Info("user created", slog.Int64("user_id", user.ID))
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT id, username, hashed_password, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return s.getOne(ctx, query, id)
}

// GetByUsername implements store.UserStore.GetByUsername
func (s *PostgresUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, username, hashed_password, created_at, updated_at
		FROM users
		WHERE username = $1
	`
	return s.getOne(ctx, query, username)
}

func (s *PostgresUserStore) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.HashedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user", slog.String("error", redact.Error(err)))
		return nil, MapError(err)
	}
	return &user, nil
}

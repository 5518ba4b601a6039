package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/phrazzld/kanban-api/internal/service/auth"
	"github.com/phrazzld/kanban-api/internal/store"
)

// UserService registers accounts and issues tokens.
type UserService interface {
	// Register creates a user and returns a token for it.
	// Returns domain validation errors for bad input and store.ErrUsernameExists
	// when the username is taken.
	Register(ctx context.Context, username, password string) (string, error)

	// Login returns a fresh token for an existing user.
	// Returns ErrInvalidCredentials on unknown username or wrong password.
	Login(ctx context.Context, username, password string) (string, error)
}

type userServiceImpl struct {
	uow      store.UnitOfWork
	hasher   auth.PasswordHasher
	verifier auth.PasswordVerifier
	tokens   auth.JWTService
	logger   *slog.Logger
}

// NewUserService creates a new UserService.
// It returns an error if any of the required dependencies are nil.
func NewUserService(
	uow store.UnitOfWork,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	tokens auth.JWTService,
	logger *slog.Logger,
) (UserService, error) {
	if uow == nil {
		return nil, domain.NewValidationError("uow", "cannot be nil")
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil")
	}
	if verifier == nil {
		return nil, domain.NewValidationError("verifier", "cannot be nil")
	}
	if tokens == nil {
		return nil, domain.NewValidationError("tokens", "cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		uow:      uow,
		hasher:   hasher,
		verifier: verifier,
		tokens:   tokens,
		logger:   logger.With(slog.String("component", "user_service")),
	}, nil
}

// Register implements UserService.Register
func (s *userServiceImpl) Register(ctx context.Context, username, password string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(username, password)
	if err != nil {
		log.Debug("registration rejected", slog.String("error", err.Error()))
		return "", err
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		return "", NewServiceError("user", "register", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	// The account only persists if a token could be issued for it.
	var token string
	err = s.uow.RunInTx(ctx, func(ctx context.Context, tx store.Stores) error {
		if err := tx.Users.Create(ctx, user); err != nil {
			return err
		}
		issued, err := s.tokens.GenerateToken(ctx, user.ID)
		if err != nil {
			return err
		}
		token = issued
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			return "", err
		}
		return "", NewServiceError("user", "register", err)
	}

	log.Info("user registered", slog.Int64("user_id", user.ID))
	return token, nil
}

// Login implements UserService.Login
func (s *userServiceImpl) Login(ctx context.Context, username, password string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.uow.Stores().Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login failed: unknown username")
			return "", ErrInvalidCredentials
		}
		return "", NewServiceError("user", "login", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			log.Debug("login failed: password mismatch", slog.Int64("user_id", user.ID))
			return "", ErrInvalidCredentials
		}
		return "", NewServiceError("user", "login", err)
	}

	token, err := s.tokens.GenerateToken(ctx, user.ID)
	if err != nil {
		return "", NewServiceError("user", "login", err)
	}
	return token, nil
}

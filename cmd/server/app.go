package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/kanban-api/internal/config"
	"github.com/phrazzld/kanban-api/internal/platform/postgres"
	"github.com/phrazzld/kanban-api/internal/service"
	"github.com/phrazzld/kanban-api/internal/service/auth"
	"github.com/phrazzld/kanban-api/internal/store"
)

// application holds the shared dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService    auth.JWTService
	userService   service.UserService
	boardService  service.BoardService
	columnService service.ColumnService
	cardService   service.CardService
}

// newApplication builds the services on top of db.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{config: cfg, logger: logger, db: db}
	if err := app.initServices(postgres.NewUnitOfWork(db, logger)); err != nil {
		return nil, err
	}
	logger.Info("Application initialized successfully")
	return app, nil
}

// initServices creates the auth and domain services over uow.
func (app *application) initServices(uow store.UnitOfWork) error {
	var err error

	app.jwtService, err = auth.NewJWTService(app.config.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	app.logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", app.config.Auth.TokenLifetimeMinutes))

	hasher := auth.NewBcryptHasher(app.config.Auth.BcryptCost)

	app.userService, err = service.NewUserService(uow, hasher, hasher, app.jwtService, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create user service: %w", err)
	}
	app.boardService, err = service.NewBoardService(uow, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create board service: %w", err)
	}
	app.columnService, err = service.NewColumnService(uow, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create column service: %w", err)
	}
	app.cardService, err = service.NewCardService(uow, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create card service: %w", err)
	}
	return nil
}

// Run serves HTTP until ctx is canceled or a shutdown signal arrives.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases application resources.
func (app *application) cleanup() {
	if app.db != nil {
		closeDB(app.db, app.logger)
	}
	app.logger.Info("Application shutdown completed")
}

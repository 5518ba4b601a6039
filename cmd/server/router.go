package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/kanban-api/internal/api"
	apiMiddleware "github.com/phrazzld/kanban-api/internal/api/middleware"
)

// setupRouter creates the router with all routes and middleware.
// Trailing slashes are optional on every route.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	authHandler := api.NewAuthHandler(app.userService, app.logger)
	boardHandler := api.NewBoardHandler(app.boardService, app.logger)
	columnHandler := api.NewColumnHandler(app.columnService, app.logger)
	cardHandler := api.NewCardHandler(app.cardService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/boards", boardHandler.ListBoards)
			r.Post("/boards", boardHandler.CreateBoard)
			r.Get("/boards/{id}", boardHandler.GetBoard)
			r.Delete("/boards/{id}", boardHandler.DeleteBoard)

			r.Post("/columns", columnHandler.CreateColumn)
			r.Patch("/columns", columnHandler.BulkUpdateColumns)
			r.Put("/columns", columnHandler.BulkUpdateColumns)
			r.Get("/columns/{id}", columnHandler.GetColumn)

			r.Post("/cards", cardHandler.CreateCard)
			r.Patch("/cards", cardHandler.BulkUpdateCards)
			r.Put("/cards", cardHandler.BulkUpdateCards)
			r.Get("/cards/{id}", cardHandler.GetCard)
			r.Patch("/cards/{id}", cardHandler.UpdateCard)
			r.Delete("/cards/{id}", cardHandler.DeleteCard)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}

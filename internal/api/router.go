package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/partydeck/monikers-server/internal/api/handlers"
	"github.com/partydeck/monikers-server/internal/api/middleware"
	"github.com/partydeck/monikers-server/internal/game"
	"github.com/partydeck/monikers-server/internal/service"
	"github.com/partydeck/monikers-server/internal/websocket"
)

func NewRouter(services *service.Services, registry *game.Registry, hub *websocket.Hub) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(services.Auth)
	cardHandler := handlers.NewCardHandler(services.Catalog)
	roomHandler := handlers.NewRoomHandler(registry, services.History)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Auth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/session", sessionHandler.Create)
		r.Get("/cards", cardHandler.GetAll)
		r.Get("/rooms/{code}", roomHandler.Get)
		r.Get("/matches", roomHandler.ListMatches)

		// WebSocket endpoint
		r.Get("/ws", wsHandler.Handle)
	})

	return r
}

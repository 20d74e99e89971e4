package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/partydeck/monikers-server/internal/api"
	"github.com/partydeck/monikers-server/internal/config"
	"github.com/partydeck/monikers-server/internal/game"
	"github.com/partydeck/monikers-server/internal/repository/postgres"
	"github.com/partydeck/monikers-server/internal/service"
	"github.com/partydeck/monikers-server/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Initialize repositories and services
	repos := postgres.NewRepositories(db)
	services := service.NewServices(repos, cfg)

	// Seed the card catalog on first boot
	if seeded, err := services.Catalog.SeedDefaultCards(context.Background()); err != nil {
		log.Printf("failed to seed card catalog: %v", err)
	} else if seeded > 0 {
		log.Printf("Seeded card catalog with %d cards", seeded)
	}

	// Initialize WebSocket hub and game registry. The hub broadcasts for the
	// registry's rooms, so the two are wired together before either runs.
	hub := websocket.NewHub()
	registry := game.NewRegistry(game.Options{
		TurnSeconds: cfg.TurnSeconds,
		ReapAfter:   cfg.RoomTTL,
	}, hub, services.History)
	hub.SetRegistry(registry)

	go hub.Run()
	go registry.Run()

	// Initialize router
	router := api.NewRouter(services, registry, hub)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	registry.Stop()
	hub.Stop()

	log.Println("Server stopped")
}

package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/raceworks/car-number-registry/internal/config"
	"github.com/raceworks/car-number-registry/internal/database"
	"github.com/raceworks/car-number-registry/internal/handlers"
	"github.com/raceworks/car-number-registry/internal/metrics"
	"github.com/raceworks/car-number-registry/internal/notifier"
	"github.com/raceworks/car-number-registry/internal/registry"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()

	// Connect to Database
	db := database.Connect(cfg)

	// Initialize Metrics
	m := metrics.New()

	// Initialize Notifier
	discordNotifier, err := notifier.NewDiscordNotifier(cfg)
	if err != nil {
		log.Printf("Discord notifier not initialized: %v", err)
	}

	// Initialize Engine and Handlers
	service := registry.NewService(db, cfg.CurrentSeason, cfg.ExpiringSoonDays)

	var n notifier.Notifier
	if discordNotifier != nil {
		n = discordNotifier
	}
	registrationHandler := handlers.NewRegistrationHandler(service, n, m)

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, registrationHandler, m)

	// Start Server
	log.Printf("Starting server on port %s (season %d)", cfg.Port, cfg.CurrentSeason)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

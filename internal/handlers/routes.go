package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/raceworks/car-number-registry/internal/metrics"
)

func RegisterRoutes(r *chi.Mux, registrationHandler *RegistrationHandler, m *metrics.Metrics) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if m != nil {
		r.Use(m.Middleware)
	}

	// Initialize Huma API
	config := huma.DefaultConfig("Car Number Registry API", "1.0.0")
	api := humachi.New(r, config)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// Registration routes
	huma.Post(api, "/registrations", registrationHandler.HandleCreate)
	huma.Get(api, "/registrations", registrationHandler.HandleList)
	huma.Get(api, "/registrations/{id}", registrationHandler.HandleGet)
	huma.Put(api, "/registrations/{id}", registrationHandler.HandleUpdate)
	huma.Delete(api, "/registrations/{id}", registrationHandler.HandleDelete)

	// Usage routes
	huma.Post(api, "/registrations/{id}/usage", registrationHandler.HandleRecordUsage)
	huma.Delete(api, "/registrations/{id}/usage", registrationHandler.HandleRemoveUsage)

	// Stats and availability
	huma.Get(api, "/stats", registrationHandler.HandleStats)
	huma.Get(api, "/numbers/{number}/availability", registrationHandler.HandleCheckNumber)
}

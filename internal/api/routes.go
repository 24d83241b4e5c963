package api

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes and wraps them with CORS
// restricted to the frontend origin
func SetupRoutes(handler *Handler, frontendURL string) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// Brokerage auth flow
	r.HandleFunc("/auth/broker/login", handler.BrokerLogin).Methods("GET")
	r.HandleFunc("/auth/broker/callback", handler.BrokerCallback).Methods("GET")

	// Portfolio routes
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/portfolio", handler.RequireUser(handler.GetPortfolio)).Methods("GET")
	api.HandleFunc("/analysis", handler.RequireUser(handler.GetAnalysis)).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-User-Email"},
		AllowCredentials: true,
	})

	return c.Handler(r)
}

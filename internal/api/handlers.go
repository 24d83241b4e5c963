package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rgupta87/portfolio-analyzer/internal/broker"
	"github.com/rgupta87/portfolio-analyzer/internal/models"
	"github.com/rgupta87/portfolio-analyzer/internal/service"
	"github.com/rs/zerolog"
)

// PortfolioService defines the operations the handlers need
type PortfolioService interface {
	LoginURL() string
	Authenticate(ctx context.Context, requestToken string) (*models.User, error)
	SyncPortfolio(ctx context.Context, user *models.User) (*models.PortfolioSummary, error)
	GenerateAnalysis(ctx context.Context, user *models.User) (*models.AnalysisReport, error)
}

// UserStore looks up users for the auth middleware
type UserStore interface {
	GetUserByEmail(email string) (*models.User, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	service PortfolioService
	users   UserStore
	logger  zerolog.Logger
}

// NewHandler creates a new Handler
func NewHandler(svc PortfolioService, users UserStore, logger zerolog.Logger) *Handler {
	return &Handler{
		service: svc,
		users:   users,
		logger:  logger,
	}
}

// BrokerLogin handles GET /auth/broker/login
func (h *Handler) BrokerLogin(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"auth_url": h.service.LoginURL()})
}

// BrokerCallback handles GET /auth/broker/callback. The brokerage
// redirects here with a request_token after a successful login.
func (h *Handler) BrokerCallback(w http.ResponseWriter, r *http.Request) {
	requestToken := r.URL.Query().Get("request_token")
	if requestToken == "" {
		http.Error(w, "request_token is required", http.StatusBadRequest)
		return
	}

	user, err := h.service.Authenticate(r.Context(), requestToken)
	if err != nil {
		h.writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "authenticated",
		"user":   user,
	})
}

// GetPortfolio handles GET /api/v1/portfolio. Each call fetches fresh
// holdings from the brokerage and replaces the stored snapshot.
func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	summary, err := h.service.SyncPortfolio(r.Context(), user)
	if err != nil {
		h.writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// GetAnalysis handles GET /api/v1/analysis
func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	report, err := h.service.GenerateAnalysis(r.Context(), user)
	if err != nil {
		h.writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// writeError maps service errors to HTTP statuses. Provider failures
// are the upstream's fault (502); a missing snapshot is the caller's
// (404); anything else is ours (500).
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var apiErr *broker.APIError
	var provErr *service.ProviderError

	switch {
	case errors.Is(err, service.ErrHoldingsNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &provErr), errors.As(err, &apiErr):
		h.logger.Error().Err(err).Msg("brokerage request failed")
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		h.logger.Error().Err(err).Msg("request failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

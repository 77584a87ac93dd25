package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"

	"github.com/mcoot/vocabquiz/internal/api/handler"
	"github.com/mcoot/vocabquiz/internal/api/middleware"
	"github.com/mcoot/vocabquiz/internal/services/auth"
	"github.com/mcoot/vocabquiz/internal/services/scoring"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	ScoringService *scoring.Service
	// Storage is pinged by the health check (optional)
	Storage handler.Pinger
	// CORSOrigins lists browser origins allowed to call the API
	CORSOrigins []string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	userHandler := handler.NewUserHandler(cfg.AuthService)
	scoreHandler := handler.NewScoreHandler(cfg.ScoringService)
	healthHandler := handler.NewHealthHandler(cfg.Storage, cfg.Logger)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(loggingMiddleware)
	api.Use(recoveryMiddleware)

	// User routes (no auth required for registering/logging in)
	api.HandleFunc("/users/register", userHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/users/login", userHandler.Login).Methods(http.MethodPost)

	// Protected user routes
	userProtected := api.PathPrefix("/users").Subrouter()
	userProtected.Use(authMiddleware)
	userProtected.HandleFunc("/me", userHandler.GetMe).Methods(http.MethodGet)
	userProtected.HandleFunc("/logout", userHandler.Logout).Methods(http.MethodPost)

	// Score routes (all require auth)
	scores := api.PathPrefix("/scores").Subrouter()
	scores.Use(authMiddleware)
	scores.HandleFunc("", scoreHandler.Submit).Methods(http.MethodPost)
	scores.HandleFunc("", scoreHandler.List).Methods(http.MethodGet)
	scores.HandleFunc("/{category}", scoreHandler.Get).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)

	if len(cfg.CORSOrigins) == 0 {
		return r
	}

	// CORS wraps the router so preflight requests never reach route matching
	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	})(r)
}

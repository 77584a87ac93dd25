package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/vocabquiz/internal/services/auth"
	"github.com/mcoot/vocabquiz/internal/services/scoring"
	"github.com/mcoot/vocabquiz/internal/web/handler"
	"github.com/mcoot/vocabquiz/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	ScoringService *scoring.Service
	StaticDir      string // Path to static files directory
	SecureCookies  bool
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	cookies := middleware.Cookies{Secure: cfg.SecureCookies}
	flashMiddleware := middleware.Flash(cookies)
	sessionMiddleware := middleware.Session(cfg.AuthService, cookies, cfg.Logger)

	// Apply global middleware to all routes
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(sessionMiddleware)

	// Create handlers
	homeHandler := handler.NewHomeHandler(cfg.Logger)
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Logger, cookies)
	accountHandler := handler.NewAccountHandler(cfg.ScoringService, cfg.Logger)
	scoreHandler := handler.NewScoreHandler(cfg.ScoringService, cfg.Logger)

	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	// Pages (flash messages are consumed here)
	pages := r.NewRoute().Subrouter()
	pages.Use(flashMiddleware)
	pages.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	pages.HandleFunc("/register", authHandler.RegisterPage).Methods(http.MethodGet)
	pages.HandleFunc("/login", authHandler.LoginPage).Methods(http.MethodGet)

	// Form actions
	r.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodGet, http.MethodPost)

	// Protected pages
	protected := r.NewRoute().Subrouter()
	protected.Use(flashMiddleware)
	protected.Use(middleware.RequireSession())
	protected.HandleFunc("/account", accountHandler.View).Methods(http.MethodGet)

	// Browser JSON endpoints
	scores := r.NewRoute().Subrouter()
	scores.Use(middleware.RequireSessionJSON())
	scores.HandleFunc("/save_score", scoreHandler.SaveScore).Methods(http.MethodPost)

	return r
}

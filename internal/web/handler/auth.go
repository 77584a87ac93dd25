package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mcoot/vocabquiz/internal/services/auth"
	"github.com/mcoot/vocabquiz/internal/web/middleware"
	"github.com/mcoot/vocabquiz/internal/web/templates/pages"
)

// Flash texts shown by the auth forms
const (
	msgInvalidUsername      = "Invalid username. Use 3-20 letters, numbers, or underscores only."
	msgPasswordRequired     = "Password is required"
	msgPasswordMismatch     = "Passwords do not match!"
	msgUsernameTaken        = "Username already taken"
	msgRegistrationComplete = "Registration successful! Please log in."
	msgInvalidCredentials   = "Invalid username or password"
	msgSomethingWentWrong   = "Something went wrong, please try again"
)

// AuthHandler handles authentication pages and actions
type AuthHandler struct {
	authService *auth.Service
	logger      *slog.Logger
	cookies     middleware.Cookies
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service, logger *slog.Logger, cookies middleware.Cookies) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
		cookies:     cookies,
	}
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetSession(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := pages.LoginData{
		PageData: pageData(r, "Log in"),
	}
	render(w, r, h.logger, pages.Login(data))
}

// RegisterPage renders the registration page
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetSession(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := pages.RegisterData{
		PageData: pageData(r, "Register"),
	}
	render(w, r, h.logger, pages.Register(data))
}

// Register handles registration form submission
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if middleware.GetSession(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.cookies.SetFlash(w, middleware.FlashError, msgSomethingWentWrong)
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	confirm := r.PostFormValue("confirm_password")

	_, err := h.authService.Register(r.Context(), username, password, confirm)
	if err != nil {
		h.cookies.SetFlash(w, middleware.FlashError, h.registerErrorMessage(r, err))
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	h.cookies.SetFlash(w, middleware.FlashSuccess, msgRegistrationComplete)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) registerErrorMessage(r *http.Request, err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidUsername):
		return msgInvalidUsername
	case errors.Is(err, auth.ErrPasswordRequired):
		return msgPasswordRequired
	case errors.Is(err, auth.ErrPasswordMismatch):
		return msgPasswordMismatch
	case errors.Is(err, auth.ErrUsernameExists):
		return msgUsernameTaken
	default:
		h.logger.Error("registration failed",
			slog.String("error", err.Error()),
			slog.String("path", r.URL.Path),
		)
		return msgSomethingWentWrong
	}
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if middleware.GetSession(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.cookies.SetFlash(w, middleware.FlashError, msgInvalidCredentials)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	session, err := h.authService.Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			h.logger.Error("login failed", slog.String("error", err.Error()))
			h.cookies.SetFlash(w, middleware.FlashError, msgSomethingWentWrong)
		} else {
			h.cookies.SetFlash(w, middleware.FlashError, msgInvalidCredentials)
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	h.cookies.SetSession(w, session)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout ends the session, if any
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		if err := h.authService.Logout(r.Context(), cookie.Value); err != nil {
			h.logger.Warn("failed to delete session", slog.String("error", err.Error()))
		}
	}

	h.cookies.ClearSession(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/mcoot/vocabquiz/internal/middleware"
	"github.com/mcoot/vocabquiz/internal/model"
	"github.com/mcoot/vocabquiz/internal/services/auth"
)

type contextKey string

const sessionContextKey contextKey = "session"

// GetSession retrieves the logged-in session from the request context
// Returns nil if the request is anonymous
func GetSession(ctx context.Context) *model.Session {
	session, _ := ctx.Value(sessionContextKey).(*model.Session)
	return session
}

// Session returns middleware that resolves the session cookie, if any, and
// stores the session in the context. Stale cookies are cleared. A session
// store failure ends the request with a 500 rather than treating the
// caller as anonymous.
func Session(authService *auth.Service, cookies Cookies, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			session, err := authService.ValidateSession(r.Context(), cookie.Value)
			switch {
			case errors.Is(err, auth.ErrInvalidSession):
				cookies.ClearSession(w)
				next.ServeHTTP(w, r)
				return
			case err != nil:
				logger.Error("failed to load session",
					slog.String("path", r.URL.Path),
					slog.String("request_id", middleware.GetRequestID(r.Context())),
					slog.String("error", err.Error()),
				)
				if wantsJSON(r) {
					WriteStatus(w, http.StatusInternalServerError, "internal_error")
				} else {
					RenderError(w, r, http.StatusInternalServerError)
				}
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// wantsJSON reports whether the caller sent or expects JSON
func wantsJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}

// RequireSession redirects anonymous requests to the login page.
// Session must be applied first.
func RequireSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetSession(r.Context()) == nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSessionJSON rejects anonymous requests with 401 and a JSON body
// instead of redirecting. Session must be applied first.
func RequireSessionJSON() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetSession(r.Context()) == nil {
				WriteStatus(w, http.StatusUnauthorized, "not_logged_in")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WriteStatus writes the {"status":"error","message":...} body used by the
// browser-facing JSON endpoints.
func WriteStatus(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "error",
		"message": message,
	})
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mcoot/vocabquiz/internal/api/apierr"
	"github.com/mcoot/vocabquiz/internal/model"
	"github.com/mcoot/vocabquiz/internal/services/auth"
)

type contextKey string

const sessionContextKey contextKey = "session"

// sessionCookieName matches the cookie set by the web login form, so a
// browser that is logged in can call the API directly.
const sessionCookieName = "session"

// Auth rejects requests without a valid session token and stores the
// session in the context for handlers
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			session, err := authService.ValidateSession(r.Context(), token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExtractToken returns the bearer token from the Authorization header,
// falling back to the session cookie. The scheme name is case-insensitive.
func ExtractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}

	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// GetSession returns the session from the request context
func GetSession(ctx context.Context) *model.Session {
	session, _ := ctx.Value(sessionContextKey).(*model.Session)
	return session
}

// MustGetSession returns the session or panics. Only for handlers mounted
// behind Auth.
func MustGetSession(ctx context.Context) *model.Session {
	session := GetSession(ctx)
	if session == nil {
		panic("api: no session in context, Auth middleware not applied")
	}
	return session
}

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/vocabquiz/internal/middleware"
)

const surface = "web"

// Logging tags each web request with an id, then logs and measures it
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	logging := middleware.Logging(logger.With(slog.String("surface", surface)))
	requestID := middleware.RequestID()
	return func(next http.Handler) http.Handler {
		return requestID(logging(next))
	}
}

// Recovery renders the HTML error page when a web handler panics
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger.With(slog.String("surface", surface)), func(w http.ResponseWriter, r *http.Request, _ any) {
		RenderError(w, r, http.StatusInternalServerError)
	})
}

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/vocabquiz/internal/api/apierr"
	"github.com/mcoot/vocabquiz/internal/middleware"
)

const surface = "api"

// Logging tags each API request with an id, then logs and measures it
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	logging := middleware.Logging(logger.With(slog.String("surface", surface)))
	requestID := middleware.RequestID()
	return func(next http.Handler) http.Handler {
		return requestID(logging(next))
	}
}

// Recovery answers a panicking API handler with the INTERNAL_ERROR envelope
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger.With(slog.String("surface", surface)), func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}

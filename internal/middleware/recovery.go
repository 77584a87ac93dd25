package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/mcoot/vocabquiz/internal/metrics"
)

// PanicHandler writes the response for a request whose handler panicked
type PanicHandler func(w http.ResponseWriter, r *http.Request, err any)

// Recovery converts handler panics into a logged error response.
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
// If the handler already started the response, nothing more is written.
func Recovery(logger *slog.Logger, handler PanicHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				metrics.PanicsRecoveredTotal.Inc()
				logger.Error("panic recovered",
					slog.Any("error", rec),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)

				if c, ok := w.(committer); ok && c.Committed() {
					return
				}
				handler(w, r, rec)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// PlainTextPanicHandler answers with a bare 500 carrying the request id
func PlainTextPanicHandler(w http.ResponseWriter, r *http.Request, _ any) {
	msg := "internal server error"
	if id := GetRequestID(r.Context()); id != "" {
		msg += " (request " + id + ")"
	}
	http.Error(w, msg, http.StatusInternalServerError)
}

package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/mcoot/vocabquiz/internal/web/templates/layout"
)

const flashContextKey = contextKey("flash")

// Flash message types, used as the CSS modifier in the layout
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// GetFlash returns the message consumed for this request, or nil
func GetFlash(ctx context.Context) *layout.FlashMessage {
	flash, _ := ctx.Value(flashContextKey).(*layout.FlashMessage)
	return flash
}

// Flash consumes a pending flash cookie: the message moves into the
// request context and the cookie is deleted so it shows exactly once.
// Apply it only to routes that render a page.
func Flash(cookies Cookies) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(flashCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			cookies.clearFlash(w)
			ctx := context.WithValue(r.Context(), flashContextKey, parseFlash(cookie.Value))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseFlash(value string) *layout.FlashMessage {
	decoded, err := url.QueryUnescape(value)
	if err != nil || decoded == "" {
		return nil
	}
	flashType, message, ok := strings.Cut(decoded, ":")
	if !ok {
		return &layout.FlashMessage{Type: FlashInfo, Message: decoded}
	}
	switch flashType {
	case FlashSuccess, FlashError, FlashInfo:
	default:
		// Unknown types would become arbitrary CSS classes
		flashType = FlashInfo
	}
	return &layout.FlashMessage{Type: flashType, Message: message}
}

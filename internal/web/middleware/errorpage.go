package middleware

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/mcoot/vocabquiz/internal/middleware"
	"github.com/mcoot/vocabquiz/internal/web/templates/pages"
)

// RenderError writes a standalone HTML error page. It does not use the
// layout so it still works when rendering a page failed.
func RenderError(w http.ResponseWriter, r *http.Request, status int) {
	var buf bytes.Buffer
	err := pages.ErrorPage(http.StatusText(status), middleware.GetRequestID(r.Context())).Render(r.Context(), &buf)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err != nil {
		_, _ = w.Write([]byte(strconv.Itoa(status) + " " + http.StatusText(status)))
		return
	}
	_, _ = buf.WriteTo(w)
}

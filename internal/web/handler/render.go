package handler

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/mcoot/vocabquiz/internal/web/middleware"
	"github.com/mcoot/vocabquiz/internal/web/templates/layout"
)

// pageData builds the layout data common to every page
func pageData(r *http.Request, title string) layout.PageData {
	data := layout.PageData{
		Title: title,
		Flash: middleware.GetFlash(r.Context()),
	}
	if session := middleware.GetSession(r.Context()); session != nil {
		data.Username = session.Username
	}
	return data
}

// render buffers an HTML component so a failed render never leaves a
// half-written page behind the error page
func render(w http.ResponseWriter, r *http.Request, logger *slog.Logger, component templ.Component) {
	var buf bytes.Buffer
	if err := component.Render(r.Context(), &buf); err != nil {
		logger.Error("failed to render page",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		middleware.RenderError(w, r, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/vocabquiz/internal/web/templates/pages"
)

// HomeHandler handles the home page
type HomeHandler struct {
	logger *slog.Logger
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(logger *slog.Logger) *HomeHandler {
	return &HomeHandler{logger: logger}
}

// Home renders the home page
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := pages.HomeData{
		PageData: pageData(r, "Home"),
	}
	render(w, r, h.logger, pages.Home(data))
}

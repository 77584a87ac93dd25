package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/mcoot/vocabquiz/internal/api/response"
)

// Pinger is implemented by backends that can report reachability
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports whether the service and its storage are up
type HealthHandler struct {
	storage Pinger
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler. storage may be nil.
func NewHealthHandler(storage Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{storage: storage, logger: logger}
}

// Health handles GET /api/v1/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		response.JSON(w, http.StatusOK, response.HealthResponse{Status: "ok"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.storage.Ping(ctx); err != nil {
		h.logger.Warn("storage ping failed", slog.String("error", err.Error()))
		response.JSON(w, http.StatusServiceUnavailable, response.HealthResponse{Status: "degraded", Storage: "unreachable"})
		return
	}

	response.JSON(w, http.StatusOK, response.HealthResponse{Status: "ok", Storage: "ok"})
}

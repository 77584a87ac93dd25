package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/mcoot/vocabquiz/internal/model"
	"github.com/mcoot/vocabquiz/internal/services/scoring"
	"github.com/mcoot/vocabquiz/internal/web/middleware"
)

// maxScoreBody bounds the JSON accepted by SaveScore
const maxScoreBody = 4 << 10

// ScoreHandler accepts quiz results from the browser
type ScoreHandler struct {
	scoringService *scoring.Service
	logger         *slog.Logger
}

// NewScoreHandler creates a new ScoreHandler
func NewScoreHandler(scoringService *scoring.Service, logger *slog.Logger) *ScoreHandler {
	return &ScoreHandler{
		scoringService: scoringService,
		logger:         logger,
	}
}

type saveScoreRequest struct {
	Category *string  `json:"category"`
	Score    *int     `json:"score"`
	Time     *float64 `json:"time"`
}

// SaveScore records a result if it beats the stored best.
// Requires RequireSessionJSON.
func (h *ScoreHandler) SaveScore(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())

	var req saveScoreRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxScoreBody)).Decode(&req); err != nil {
		middleware.WriteStatus(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if req.Category == nil || req.Score == nil || req.Time == nil {
		middleware.WriteStatus(w, http.StatusBadRequest, "invalid_request")
		return
	}

	result := model.Result{Category: *req.Category, Score: *req.Score, Time: *req.Time}
	if _, err := h.scoringService.Submit(r.Context(), session.UserID, result); err != nil {
		if errors.Is(err, model.ErrInvalidResult) {
			middleware.WriteStatus(w, http.StatusBadRequest, "invalid_request")
			return
		}
		h.logger.Error("failed to save score",
			slog.Int64("user_id", int64(session.UserID)),
			slog.String("error", err.Error()),
		)
		middleware.WriteStatus(w, http.StatusInternalServerError, "internal_error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

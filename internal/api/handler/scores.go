package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/vocabquiz/internal/api/apierr"
	"github.com/mcoot/vocabquiz/internal/api/middleware"
	"github.com/mcoot/vocabquiz/internal/api/request"
	"github.com/mcoot/vocabquiz/internal/api/response"
	"github.com/mcoot/vocabquiz/internal/model"
	"github.com/mcoot/vocabquiz/internal/services/scoring"
)

// ScoreHandler handles score endpoints
type ScoreHandler struct {
	scoringService *scoring.Service
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(scoringService *scoring.Service) *ScoreHandler {
	return &ScoreHandler{
		scoringService: scoringService,
	}
}

// Submit handles POST /api/v1/scores
func (h *ScoreHandler) Submit(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	var req request.SubmitScoreRequest
	if err := request.Decode(w, r, &req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Category == nil || req.Score == nil || req.Time == nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("category, score and time are required"))
		return
	}

	result := model.Result{Category: *req.Category, Score: *req.Score, Time: *req.Time}
	updated, err := h.scoringService.Submit(r.Context(), session.UserID, result)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SubmitScoreResponse{Status: "ok", Updated: updated})
}

// Get handles GET /api/v1/scores/{category}
func (h *ScoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	score, err := h.scoringService.Best(r.Context(), session.UserID, mux.Vars(r)["category"])
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ScoreResponse{Score: response.ScoreFromModel(*score)})
}

// List handles GET /api/v1/scores
func (h *ScoreHandler) List(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	scores, err := h.scoringService.List(r.Context(), session.UserID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ScoreListFromModel(scores))
}

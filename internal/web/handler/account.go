package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/vocabquiz/internal/services/scoring"
	"github.com/mcoot/vocabquiz/internal/web/middleware"
	"github.com/mcoot/vocabquiz/internal/web/templates/pages"
)

// AccountHandler shows the logged-in user's best scores
type AccountHandler struct {
	scoringService *scoring.Service
	logger         *slog.Logger
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(scoringService *scoring.Service, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		scoringService: scoringService,
		logger:         logger,
	}
}

// View renders the account page. Requires RequireSession.
func (h *AccountHandler) View(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())

	scores, err := h.scoringService.List(r.Context(), session.UserID)
	if err != nil {
		h.logger.Error("failed to list scores",
			slog.Int64("user_id", int64(session.UserID)),
			slog.String("error", err.Error()),
		)
		middleware.RenderError(w, r, http.StatusInternalServerError)
		return
	}

	rows := make([]pages.ScoreRow, len(scores))
	for i, s := range scores {
		rows[i] = pages.ScoreRow{
			Category:  s.Category,
			BestScore: s.BestScore,
			BestTime:  s.BestTime,
		}
	}

	data := pages.AccountData{
		PageData: pageData(r, "Account"),
		Scores:   rows,
	}
	render(w, r, h.logger, pages.Account(data))
}

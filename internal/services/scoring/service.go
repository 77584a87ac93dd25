package scoring

import (
	"context"
	"log/slog"

	"github.com/mcoot/vocabquiz/internal/metrics"
	"github.com/mcoot/vocabquiz/internal/model"
	"github.com/mcoot/vocabquiz/internal/storage"
)

// Service records quiz results and keeps each user's best per category
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new scoring Service
func New(store storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		logger:  logger,
	}
}

// Submit stores result as the user's best for its category when it is the
// first result for that category or strictly beats the stored best.
// Reports whether the stored best changed.
func (s *Service) Submit(ctx context.Context, userID model.UserID, result model.Result) (bool, error) {
	if err := result.Validate(); err != nil {
		return false, err
	}

	updated, err := s.storage.SaveBestScore(ctx, userID, result)
	if err != nil {
		return false, err
	}

	outcome := metrics.OutcomeKept
	if updated {
		outcome = metrics.OutcomeRecorded
	}
	metrics.ScoreSubmissionsTotal.WithLabelValues(outcome).Inc()

	s.logger.Debug("score submitted",
		slog.Int64("user_id", int64(userID)),
		slog.String("category", result.Category),
		slog.Int("score", result.Score),
		slog.Float64("time", result.Time),
		slog.Bool("updated", updated),
	)
	return updated, nil
}

// Best returns the user's best score for one category, or
// model.ErrScoreNotFound when nothing has been recorded for it
func (s *Service) Best(ctx context.Context, userID model.UserID, category string) (*model.Score, error) {
	return s.storage.GetScore(ctx, userID, category)
}

// List returns the user's best scores ordered by category
func (s *Service) List(ctx context.Context, userID model.UserID) ([]model.Score, error) {
	return s.storage.ListScores(ctx, userID)
}

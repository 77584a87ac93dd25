package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mcoot/vocabquiz/internal/model"
	"github.com/mcoot/vocabquiz/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users         map[model.UserID]*model.User
	usernameIndex map[string]model.UserID
	scores        map[scoreKey]*model.Score
	nextUserID    model.UserID
	nextScoreID   int64
}

type scoreKey struct {
	userID   model.UserID
	category string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:         make(map[model.UserID]*model.User),
		usernameIndex: make(map[string]model.UserID),
		scores:        make(map[scoreKey]*model.Score),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, username, passwordHash string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.usernameIndex[username]; ok {
		return nil, model.ErrUsernameExists
	}
	s.nextUserID++
	user := &model.User{
		ID:           s.nextUserID,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	s.users[user.ID] = user
	s.usernameIndex[username] = user.ID
	copied := *user
	return &copied, nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *s.users[id]
	return &copied, nil
}

// UserCount returns the number of registered users
func (s *Storage) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// Score operations

func (s *Storage) SaveBestScore(ctx context.Context, userID model.UserID, result model.Result) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := scoreKey{userID: userID, category: result.Category}
	existing, ok := s.scores[key]
	if !ok {
		s.nextScoreID++
		s.scores[key] = &model.Score{
			ID:        s.nextScoreID,
			UserID:    userID,
			Category:  result.Category,
			BestScore: result.Score,
			BestTime:  result.Time,
		}
		return true, nil
	}
	if !result.Beats(*existing) {
		return false, nil
	}
	existing.BestScore = result.Score
	existing.BestTime = result.Time
	return true, nil
}

func (s *Storage) GetScore(ctx context.Context, userID model.UserID, category string) (*model.Score, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	score, ok := s.scores[scoreKey{userID: userID, category: category}]
	if !ok {
		return nil, model.ErrScoreNotFound
	}
	copied := *score
	return &copied, nil
}

func (s *Storage) ListScores(ctx context.Context, userID model.UserID) ([]model.Score, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	scores := []model.Score{}
	for key, score := range s.scores {
		if key.userID == userID {
			scores = append(scores, *score)
		}
	}
	sort.Slice(scores, func(i, j int) bool {
		return scores[i].Category < scores[j].Category
	})
	return scores, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return nil
}

func (s *Storage) Close() error {
	return nil
}

package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/vocabquiz/internal/model"
	"github.com/mcoot/vocabquiz/internal/testutil"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.ctx = context.Background()

	cfg := DefaultConfig()
	cfg.Path = filepath.Join(s.T().TempDir(), "db", "users.db")

	store, err := New(s.ctx, cfg, testutil.NopLogger())
	s.Require().NoError(err)
	s.storage = store
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
}

func (s *StorageSuite) createUser(username string) *model.User {
	user, err := s.storage.CreateUser(s.ctx, username, "hash-"+username)
	s.Require().NoError(err)
	return user
}

// User tests

func (s *StorageSuite) TestCreateAndGetUser() {
	user := s.createUser("alice")
	s.NotZero(user.ID)

	retrieved, err := s.storage.GetUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("alice", retrieved.Username)
	s.Equal("hash-alice", retrieved.PasswordHash)
	s.False(retrieved.CreatedAt.IsZero())
}

func (s *StorageSuite) TestGetUserByUsername() {
	created := s.createUser("alice")

	user, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(created.ID, user.ID)
}

func (s *StorageSuite) TestCreateUserDuplicateUsername() {
	s.createUser("alice")

	_, err := s.storage.CreateUser(s.ctx, "alice", "other")
	s.ErrorIs(err, model.ErrUsernameExists)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, 999)
	s.ErrorIs(err, model.ErrUserNotFound)

	_, err = s.storage.GetUserByUsername(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}

// Score tests

func (s *StorageSuite) TestSaveBestScoreFirstSubmissionInserts() {
	user := s.createUser("alice")

	saved, err := s.storage.SaveBestScore(s.ctx, user.ID, model.Result{Category: "math", Score: 5, Time: 3.2})
	s.Require().NoError(err)
	s.True(saved)

	score, err := s.storage.GetScore(s.ctx, user.ID, "math")
	s.Require().NoError(err)
	s.Equal(5, score.BestScore)
	s.InDelta(3.2, score.BestTime, 1e-9)
}

func (s *StorageSuite) TestSaveBestScoreOnlyKeepsBetterResults() {
	user := s.createUser("alice")
	_, err := s.storage.SaveBestScore(s.ctx, user.ID, model.Result{Category: "math", Score: 10, Time: 5.0})
	s.Require().NoError(err)

	tests := []struct {
		result    model.Result
		wantSaved bool
		wantScore int
		wantTime  float64
	}{
		{model.Result{Category: "math", Score: 9, Time: 1.0}, false, 10, 5.0},
		{model.Result{Category: "math", Score: 10, Time: 5.0}, false, 10, 5.0},
		{model.Result{Category: "math", Score: 10, Time: 4.0}, true, 10, 4.0},
		{model.Result{Category: "math", Score: 11, Time: 9.0}, true, 11, 9.0},
	}

	for _, tt := range tests {
		saved, err := s.storage.SaveBestScore(s.ctx, user.ID, tt.result)
		s.Require().NoError(err)
		s.Equal(tt.wantSaved, saved, "result %+v", tt.result)

		score, err := s.storage.GetScore(s.ctx, user.ID, "math")
		s.Require().NoError(err)
		s.Equal(tt.wantScore, score.BestScore)
		s.InDelta(tt.wantTime, score.BestTime, 1e-9)
	}
}

func (s *StorageSuite) TestSaveBestScoreKeepsOneRowPerCategory() {
	user := s.createUser("alice")
	for i := 0; i < 5; i++ {
		_, err := s.storage.SaveBestScore(s.ctx, user.ID, model.Result{Category: "math", Score: i, Time: 1})
		s.Require().NoError(err)
	}

	scores, err := s.storage.ListScores(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Len(scores, 1)
	s.Equal(4, scores[0].BestScore)
}

func (s *StorageSuite) TestSaveBestScoreConcurrentSubmissionsKeepBest() {
	user := s.createUser("alice")

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			_, err := s.storage.SaveBestScore(s.ctx, user.ID, model.Result{Category: "math", Score: score, Time: 2})
			s.NoError(err)
		}(i)
	}
	wg.Wait()

	score, err := s.storage.GetScore(s.ctx, user.ID, "math")
	s.Require().NoError(err)
	s.Equal(20, score.BestScore)
}

func (s *StorageSuite) TestListScoresOrderedAndScoped() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")

	for _, category := range []string{"verbs", "animals", "food"} {
		_, err := s.storage.SaveBestScore(s.ctx, alice.ID, model.Result{Category: category, Score: 1, Time: 1})
		s.Require().NoError(err)
	}
	_, err := s.storage.SaveBestScore(s.ctx, bob.ID, model.Result{Category: "colors", Score: 1, Time: 1})
	s.Require().NoError(err)

	scores, err := s.storage.ListScores(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Require().Len(scores, 3)

	var categories []string
	for _, sc := range scores {
		s.Equal(alice.ID, sc.UserID)
		categories = append(categories, sc.Category)
	}
	s.Equal([]string{"animals", "food", "verbs"}, categories)
}

func (s *StorageSuite) TestListScoresEmpty() {
	user := s.createUser("alice")

	scores, err := s.storage.ListScores(s.ctx, user.ID)
	s.Require().NoError(err)
	s.NotNil(scores)
	s.Empty(scores)
}

func (s *StorageSuite) TestReopenKeepsData() {
	path := filepath.Join(s.T().TempDir(), "reopen.db")

	cfg := DefaultConfig()
	cfg.Path = path
	first, err := New(s.ctx, cfg, testutil.NopLogger())
	s.Require().NoError(err)
	created, err := first.CreateUser(s.ctx, "carol", "hash")
	s.Require().NoError(err)
	s.Require().NoError(first.Close())

	second, err := New(s.ctx, cfg, testutil.NopLogger())
	s.Require().NoError(err)
	defer func() { _ = second.Close() }()

	found, err := second.GetUserByUsername(s.ctx, "carol")
	s.Require().NoError(err)
	s.Equal(created.ID, found.ID)
}

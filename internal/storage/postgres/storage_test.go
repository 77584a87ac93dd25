package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/vocabquiz/internal/model"
	"github.com/mcoot/vocabquiz/internal/testutil"
)

// StorageSuite runs against a real database and is skipped unless
// TEST_DATABASE_URL points at a disposable PostgreSQL instance.
type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.ctx = context.Background()

	cfg := DefaultConfig()
	cfg.URL = os.Getenv("TEST_DATABASE_URL")

	store, err := New(s.ctx, cfg, testutil.NopLogger())
	s.Require().NoError(err)
	s.storage = store

	_, err = store.pool.Exec(s.ctx, "TRUNCATE scores, users RESTART IDENTITY CASCADE")
	s.Require().NoError(err)
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
}

func (s *StorageSuite) TestCreateAndGetUser() {
	user, err := s.storage.CreateUser(s.ctx, "alice", "hash")
	s.Require().NoError(err)
	s.NotZero(user.ID)
	s.False(user.CreatedAt.IsZero())

	byID, err := s.storage.GetUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("alice", byID.Username)

	byName, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(user.ID, byName.ID)
}

func (s *StorageSuite) TestCreateUserDuplicateUsername() {
	_, err := s.storage.CreateUser(s.ctx, "alice", "hash")
	s.Require().NoError(err)

	_, err = s.storage.CreateUser(s.ctx, "alice", "hash")
	s.ErrorIs(err, model.ErrUsernameExists)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUserByUsername(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestSaveBestScore() {
	user, err := s.storage.CreateUser(s.ctx, "alice", "hash")
	s.Require().NoError(err)

	saved, err := s.storage.SaveBestScore(s.ctx, user.ID, model.Result{Category: "math", Score: 10, Time: 5.0})
	s.Require().NoError(err)
	s.True(saved)

	saved, err = s.storage.SaveBestScore(s.ctx, user.ID, model.Result{Category: "math", Score: 9, Time: 1.0})
	s.Require().NoError(err)
	s.False(saved)

	saved, err = s.storage.SaveBestScore(s.ctx, user.ID, model.Result{Category: "math", Score: 10, Time: 4.0})
	s.Require().NoError(err)
	s.True(saved)

	score, err := s.storage.GetScore(s.ctx, user.ID, "math")
	s.Require().NoError(err)
	s.Equal(10, score.BestScore)
	s.InDelta(4.0, score.BestTime, 1e-9)
}

func (s *StorageSuite) TestListScoresOrderedAndScoped() {
	alice, _ := s.storage.CreateUser(s.ctx, "alice", "hash")
	bob, _ := s.storage.CreateUser(s.ctx, "bob", "hash")

	_, _ = s.storage.SaveBestScore(s.ctx, alice.ID, model.Result{Category: "verbs", Score: 1, Time: 1})
	_, _ = s.storage.SaveBestScore(s.ctx, alice.ID, model.Result{Category: "animals", Score: 1, Time: 1})
	_, _ = s.storage.SaveBestScore(s.ctx, bob.ID, model.Result{Category: "colors", Score: 1, Time: 1})

	scores, err := s.storage.ListScores(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Require().Len(scores, 2)
	s.Equal("animals", scores[0].Category)
	s.Equal("verbs", scores[1].Category)
}

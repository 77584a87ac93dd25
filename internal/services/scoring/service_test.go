package scoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/vocabquiz/internal/model"
	"github.com/mcoot/vocabquiz/internal/storage/memory"
	"github.com/mcoot/vocabquiz/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
	userID  model.UserID
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage, testutil.NopLogger())
	s.ctx = context.Background()

	user, err := s.storage.CreateUser(s.ctx, "alice123", "hash")
	s.Require().NoError(err)
	s.userID = user.ID
}

func (s *ServiceSuite) submit(category string, score int, time float64) bool {
	updated, err := s.service.Submit(s.ctx, s.userID, model.Result{Category: category, Score: score, Time: time})
	s.Require().NoError(err)
	return updated
}

func (s *ServiceSuite) best(category string) model.Score {
	score, err := s.service.Best(s.ctx, s.userID, category)
	s.Require().NoError(err)
	return *score
}

func (s *ServiceSuite) TestFirstSubmissionInserts() {
	s.True(s.submit("math", 5, 3.2))

	best := s.best("math")
	s.Equal(5, best.BestScore)
	s.Equal(3.2, best.BestTime)
}

func (s *ServiceSuite) TestSubmissionSequence() {
	s.True(s.submit("math", 10, 5.0))

	// Equal score, faster time
	s.True(s.submit("math", 10, 4.0))
	s.Equal(model.Score{ID: 1, UserID: s.userID, Category: "math", BestScore: 10, BestTime: 4.0}, s.best("math"))

	// Lower score, even if faster
	s.False(s.submit("math", 9, 1.0))
	s.Equal(10, s.best("math").BestScore)

	// Higher score, even if slower
	s.True(s.submit("math", 11, 9.0))
	s.Equal(11, s.best("math").BestScore)
	s.Equal(9.0, s.best("math").BestTime)
}

func (s *ServiceSuite) TestEqualResultIsKept() {
	s.True(s.submit("math", 10, 5.0))
	s.False(s.submit("math", 10, 5.0))
}

func (s *ServiceSuite) TestCategoriesAreIndependent() {
	s.True(s.submit("math", 10, 5.0))
	s.True(s.submit("science", 1, 50.0))

	s.Equal(10, s.best("math").BestScore)
	s.Equal(1, s.best("science").BestScore)
}

func (s *ServiceSuite) TestSubmitRejectsInvalidResult() {
	_, err := s.service.Submit(s.ctx, s.userID, model.Result{Category: "", Score: 1, Time: 1})
	s.ErrorIs(err, model.ErrInvalidResult)

	_, err = s.service.Submit(s.ctx, s.userID, model.Result{Category: "math", Score: 1, Time: -1})
	s.ErrorIs(err, model.ErrInvalidResult)

	scores, err := s.service.List(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Empty(scores)
}

func (s *ServiceSuite) TestListIsOrderedAndScoped() {
	other, err := s.storage.CreateUser(s.ctx, "bob_99", "hash")
	s.Require().NoError(err)

	s.submit("zoology", 1, 1)
	s.submit("art", 2, 2)
	_, err = s.service.Submit(s.ctx, other.ID, model.Result{Category: "math", Score: 3, Time: 3})
	s.Require().NoError(err)

	scores, err := s.service.List(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Require().Len(scores, 2)
	s.Equal("art", scores[0].Category)
	s.Equal("zoology", scores[1].Category)
	for _, score := range scores {
		s.Equal(s.userID, score.UserID)
	}
}

func (s *ServiceSuite) TestBestForUnplayedCategory() {
	s.submit("math", 5, 3.2)

	_, err := s.service.Best(s.ctx, s.userID, "art")
	s.ErrorIs(err, model.ErrScoreNotFound)
}

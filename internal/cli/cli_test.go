package cli

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/vocabquiz/internal/api"
	"github.com/mcoot/vocabquiz/internal/factory"
	"github.com/mcoot/vocabquiz/internal/testutil"
)

type CLISuite struct {
	suite.Suite
	app       *factory.TestApp
	server    *httptest.Server
	tokenFile string
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) SetupTest() {
	s.T().Setenv("QUIZCTL_TOKEN", "")
	s.app = factory.NewTestApp()
	s.server = httptest.NewServer(api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		AuthService:    s.app.AuthService,
		ScoringService: s.app.ScoringService,
		Storage:        s.app.Storage,
	}))
	s.tokenFile = filepath.Join(s.T().TempDir(), "quizctl", "token")
}

func (s *CLISuite) TearDownTest() {
	s.server.Close()
}

// run executes quizctl against the test server and returns its stdout
func (s *CLISuite) run(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--server", s.server.URL, "--token-file", s.tokenFile}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (s *CLISuite) runJSON(dst any, args ...string) {
	out, err := s.run(append([]string{"--output", "json"}, args...)...)
	s.Require().NoError(err)
	s.Require().NoError(json.Unmarshal([]byte(out), dst), out)
}

func (s *CLISuite) registerAndLogin(username string) {
	_, err := s.run("register", "--user", username, "--pass", "pass1")
	s.Require().NoError(err)
	_, err = s.run("login", "--user", username, "--pass", "pass1")
	s.Require().NoError(err)
}

func (s *CLISuite) TestHealth() {
	var result HealthResult
	s.runJSON(&result, "health")
	s.Equal("ok", result.Status)

	out, err := s.run("health")
	s.Require().NoError(err)
	s.Contains(out, "Status: ok")
}

func (s *CLISuite) TestRegisterPrintsUser() {
	var user User
	s.runJSON(&user, "register", "--user", "alice123", "--pass", "pass1")
	s.Equal("alice123", user.Username)
	s.NotZero(user.ID)

	// Registering does not log in
	s.NoFileExists(s.tokenFile)
}

func (s *CLISuite) TestRegisterConfirmMismatch() {
	_, err := s.run("register", "--user", "alice123", "--pass", "pass1", "--confirm", "pass2")
	var apiErr *APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal("PASSWORD_MISMATCH", apiErr.Code)
	s.Equal(0, s.app.MemoryStorage.UserCount())
}

func (s *CLISuite) TestRegisterDuplicate() {
	_, err := s.run("register", "--user", "alice123", "--pass", "pass1")
	s.Require().NoError(err)

	_, err = s.run("register", "--user", "alice123", "--pass", "pass1")
	var apiErr *APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal("USERNAME_EXISTS", apiErr.Code)
}

func (s *CLISuite) TestLoginSavesToken() {
	_, err := s.run("register", "--user", "alice123", "--pass", "pass1")
	s.Require().NoError(err)

	s.app.MockRandom.QueueToken("tok-alice")
	var result AuthResult
	s.runJSON(&result, "login", "--user", "alice123", "--pass", "pass1")
	s.Equal("tok-alice", result.SessionToken)
	s.Equal("alice123", result.User.Username)

	data, err := os.ReadFile(s.tokenFile)
	s.Require().NoError(err)
	s.Equal("tok-alice", strings.TrimSpace(string(data)))

	var me User
	s.runJSON(&me, "me")
	s.Equal("alice123", me.Username)
}

func (s *CLISuite) TestLoginWrongPassword() {
	_, err := s.run("register", "--user", "alice123", "--pass", "pass1")
	s.Require().NoError(err)

	_, err = s.run("login", "--user", "alice123", "--pass", "wrong")
	var apiErr *APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal("INVALID_CREDENTIALS", apiErr.Code)
	s.NoFileExists(s.tokenFile)
}

func (s *CLISuite) TestMeRequiresLogin() {
	_, err := s.run("me")
	var apiErr *APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(401, apiErr.Status)
}

func (s *CLISuite) TestLogoutRemovesToken() {
	s.registerAndLogin("alice123")
	s.Require().Equal(1, s.app.MemorySessions.Len())

	out, err := s.run("logout")
	s.Require().NoError(err)
	s.Contains(out, "Logged out")
	s.NoFileExists(s.tokenFile)
	s.Equal(0, s.app.MemorySessions.Len())

	// Logging out again is harmless
	_, err = s.run("logout")
	s.NoError(err)
}

func (s *CLISuite) TestLogoutWithStaleToken() {
	s.Require().NoError(os.MkdirAll(filepath.Dir(s.tokenFile), 0o700))
	s.Require().NoError(os.WriteFile(s.tokenFile, []byte("stale\n"), 0o600))

	_, err := s.run("logout")
	s.Require().NoError(err)
	s.NoFileExists(s.tokenFile)
}

func (s *CLISuite) TestScoreSubmitAndList() {
	s.registerAndLogin("alice123")

	var submit SubmitResult
	s.runJSON(&submit, "score", "submit", "--category", "math", "--score", "10", "--time", "5")
	s.Equal("ok", submit.Status)
	s.True(submit.Updated)

	s.runJSON(&submit, "score", "submit", "--category", "math", "--score", "9", "--time", "1")
	s.False(submit.Updated)

	s.runJSON(&submit, "score", "submit", "--category", "animals", "--score", "3", "--time", "2.5")
	s.True(submit.Updated)

	var list ScoreList
	s.runJSON(&list, "score", "list")
	s.Require().Len(list.Scores, 2)
	s.Equal(Score{Category: "animals", BestScore: 3, BestTime: 2.5}, list.Scores[0])
	s.Equal(Score{Category: "math", BestScore: 10, BestTime: 5}, list.Scores[1])

	out, err := s.run("score", "list")
	s.Require().NoError(err)
	s.Contains(out, "CATEGORY")
	s.Contains(out, "2.5")
}

func (s *CLISuite) TestScoreGet() {
	s.registerAndLogin("alice123")
	_, err := s.run("score", "submit", "--category", "big cats", "--score", "7", "--time", "3.5")
	s.Require().NoError(err)

	var score Score
	s.runJSON(&score, "score", "get", "--category", "big cats")
	s.Equal(Score{Category: "big cats", BestScore: 7, BestTime: 3.5}, score)

	out, err := s.run("score", "get", "--category", "big cats")
	s.Require().NoError(err)
	s.Contains(out, "big cats")

	_, err = s.run("score", "get", "--category", "math")
	s.True(IsCode(err, "NOT_FOUND"))
}

func (s *CLISuite) TestScoreListEmpty() {
	s.registerAndLogin("alice123")

	out, err := s.run("score", "list")
	s.Require().NoError(err)
	s.Contains(out, "No scores yet")
}

func (s *CLISuite) TestScoreSubmitRequiresCategory() {
	s.registerAndLogin("alice123")

	_, err := s.run("score", "submit", "--score", "1", "--time", "1")
	s.Error(err)
}

func (s *CLISuite) TestScoreSubmitRequiresLogin() {
	_, err := s.run("score", "submit", "--category", "math", "--score", "1", "--time", "1")
	var apiErr *APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal("UNAUTHORIZED", apiErr.Code)
}

func (s *CLISuite) TestTokenFlagOverridesFile() {
	s.registerAndLogin("alice123")

	_, err := s.run("--token", "bogus", "me")
	s.Error(err)
}

func (s *CLISuite) TestHealthWaitGivesUp() {
	s.server.Close()

	start := time.Now()
	_, err := s.run("health", "--wait", "600ms")
	s.Require().Error(err)
	s.Contains(err.Error(), "not healthy")
	s.GreaterOrEqual(time.Since(start), 500*time.Millisecond)
}

func (s *CLISuite) TestVerboseTracesRequests() {
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--server", s.server.URL, "--token-file", s.tokenFile, "-v", "health"})
	s.Require().NoError(cmd.Execute())

	s.Contains(errOut.String(), "GET "+s.server.URL+"/api/v1/health -> 200")
}

func (s *CLISuite) TestRejectsUnknownOutputFormat() {
	_, err := s.run("--output", "yaml", "health")
	s.Require().Error(err)
	s.Contains(err.Error(), "unknown output format")
}

func (s *CLISuite) TestRejectsInvalidServerURL() {
	_, err := s.run("--server", "localhost:8080", "health")
	s.Require().Error(err)
	s.Contains(err.Error(), "invalid server URL")
}

func (s *CLISuite) TestErrorsCarryAPICode() {
	_, err := s.run("me")
	s.True(IsCode(err, "UNAUTHORIZED"))
	s.False(IsCode(err, "INTERNAL_ERROR"))
	s.False(IsCode(nil, "UNAUTHORIZED"))
}

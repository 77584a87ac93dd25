package factory

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/vocabquiz/internal/config"
	"github.com/mcoot/vocabquiz/internal/model"
	"github.com/mcoot/vocabquiz/internal/services/auth"
	"github.com/mcoot/vocabquiz/internal/storage/sqlite"
	"github.com/mcoot/vocabquiz/internal/testutil"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: register, log in, submit results, read them back
func (s *IntegrationSuite) TestCompleteScoreFlow() {
	// Step 1: Register
	user, err := s.app.AuthService.Register(s.ctx, "alice123", "pass1", "pass1")
	s.Require().NoError(err)

	// Step 2: Log in
	session, err := s.app.AuthService.Login(s.ctx, "alice123", "pass1")
	s.Require().NoError(err)
	s.Equal(user.ID, session.UserID)

	// Step 3: Submit results
	updated, err := s.app.ScoringService.Submit(s.ctx, session.UserID, model.Result{Category: "math", Score: 5, Time: 3.2})
	s.Require().NoError(err)
	s.True(updated)

	updated, err = s.app.ScoringService.Submit(s.ctx, session.UserID, model.Result{Category: "math", Score: 4, Time: 1.0})
	s.Require().NoError(err)
	s.False(updated)

	// Step 4: List
	scores, err := s.app.ScoringService.List(s.ctx, session.UserID)
	s.Require().NoError(err)
	s.Require().Len(scores, 1)
	s.Equal("math", scores[0].Category)
	s.Equal(5, scores[0].BestScore)
	s.Equal(3.2, scores[0].BestTime)

	// Step 5: Log out
	s.Require().NoError(s.app.AuthService.Logout(s.ctx, session.Token))
	_, err = s.app.AuthService.ValidateSession(s.ctx, session.Token)
	s.ErrorIs(err, auth.ErrInvalidSession)
}

func (s *IntegrationSuite) TestCleanExpiredSessions() {
	_, err := s.app.AuthService.Register(s.ctx, "alice123", "pass1", "pass1")
	s.Require().NoError(err)
	_, err = s.app.AuthService.Login(s.ctx, "alice123", "pass1")
	s.Require().NoError(err)

	s.Equal(0, s.app.CleanExpiredSessions())
	s.Equal(1, s.app.MemorySessions.Len())

	s.app.MockClock.Advance(auth.DefaultConfig().SessionDuration + time.Minute)
	s.Equal(1, s.app.CleanExpiredSessions())
	s.Equal(0, s.app.MemorySessions.Len())
}

func (s *IntegrationSuite) TestRunSessionJanitorStopsOnCancel() {
	ctx, cancel := context.WithCancel(s.ctx)
	done := make(chan struct{})
	go func() {
		s.app.RunSessionJanitor(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		s.Fail("janitor did not stop")
	}
}

func TestNewWithMemoryStorage(t *testing.T) {
	app, err := New(context.Background(), Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer app.Close()

	if err := app.Storage.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestNewWithSQLiteStorage(t *testing.T) {
	sqliteCfg := sqlite.DefaultConfig()
	sqliteCfg.Path = filepath.Join(t.TempDir(), "users.db")

	app, err := New(context.Background(), Config{
		StorageType:  StorageTypeSQLite,
		SQLiteConfig: &sqliteCfg,
		Logger:       testutil.NopLogger(),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer app.Close()

	if _, err := app.AuthService.Register(context.Background(), "bob_99", "pw", "pw"); err != nil {
		t.Errorf("Register() error = %v", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"unknown storage", Config{StorageType: "mongo"}},
		{"postgres without config", Config{StorageType: StorageTypePostgres}},
		{"redis without config", Config{SessionStoreType: SessionStoreRedis}},
		{"unknown session store", Config{SessionStoreType: "memcached"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(context.Background(), tt.cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestConfigFromAppConfig(t *testing.T) {
	appCfg := &config.AppConfig{
		DatabaseURL: "postgres://quiz@localhost/quiz",
		RedisURL:    "redis://localhost:6379",
		SessionTTL:  time.Hour,
	}

	cfg := ConfigFromAppConfig(appCfg, testutil.NopLogger())

	if cfg.StorageType != StorageTypePostgres {
		t.Errorf("StorageType = %q, want postgres", cfg.StorageType)
	}
	if cfg.PostgresConfig == nil || cfg.PostgresConfig.URL != appCfg.DatabaseURL {
		t.Errorf("PostgresConfig not populated: %+v", cfg.PostgresConfig)
	}
	if cfg.SessionStoreType != SessionStoreRedis || cfg.RedisConfig.DefaultSessionTTL != time.Hour {
		t.Errorf("redis session store not configured: %+v", cfg.RedisConfig)
	}
	if cfg.AuthConfig.SessionDuration != time.Hour {
		t.Errorf("SessionDuration = %v, want 1h", cfg.AuthConfig.SessionDuration)
	}
}

package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/vocabquiz/internal/dependencies/clock"
	"github.com/mcoot/vocabquiz/internal/dependencies/random"
	"github.com/mcoot/vocabquiz/internal/metrics"
	"github.com/mcoot/vocabquiz/internal/model"
	"github.com/mcoot/vocabquiz/internal/storage"
)

// Errors
var (
	ErrInvalidUsername    = errors.New("invalid username")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUsernameExists     = model.ErrUsernameExists
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

// sessionTokenBytes is the entropy carried by each session token
const sessionTokenBytes = 32

// Service handles registration, login and session management
type Service struct {
	storage  storage.Storage
	sessions storage.SessionStore
	clock    clock.Clock
	random   random.Random
	logger   *slog.Logger

	sessionDuration time.Duration
	bcryptCost      int

	dummyHashOnce sync.Once
	dummyHash     []byte
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
	// BcryptCost is the work factor for new password hashes
	BcryptCost int
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 7 * 24 * time.Hour,
		BcryptCost:      bcrypt.DefaultCost,
	}
}

// New creates a new auth Service
func New(store storage.Storage, sessions storage.SessionStore, clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *Service {
	defaults := DefaultConfig()
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = defaults.SessionDuration
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = defaults.BcryptCost
	}
	return &Service{
		storage:         store,
		sessions:        sessions,
		clock:           clk,
		random:          rnd,
		logger:          logger,
		sessionDuration: cfg.SessionDuration,
		bcryptCost:      cfg.BcryptCost,
	}
}

// Register validates the form input and creates a user account.
// Nothing is written unless every check passes.
func (s *Service) Register(ctx context.Context, username, password, confirmPassword string) (*model.User, error) {
	user, err := s.register(ctx, username, password, confirmPassword)
	switch {
	case err == nil:
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
		s.logger.Info("user registered",
			slog.Int64("user_id", int64(user.ID)),
			slog.String("username", user.Username),
		)
	case isInputError(err):
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
	default:
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultFailure).Inc()
	}
	return user, err
}

func (s *Service) register(ctx context.Context, username, password, confirmPassword string) (*model.User, error) {
	if !model.ValidUsername(username) {
		return nil, ErrInvalidUsername
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}
	if password != confirmPassword {
		return nil, ErrPasswordMismatch
	}

	// Check if username exists
	_, err := s.storage.GetUserByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameExists
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := hashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	// A concurrent registration can still win the race; the store's
	// uniqueness check reports it as ErrUsernameExists.
	return s.storage.CreateUser(ctx, username, string(hash))
}

// Login authenticates a user and creates a session.
// Unknown usernames and wrong passwords both return ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (*model.Session, error) {
	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			// Spend the same bcrypt work as a real check
			_ = checkPassword(s.getDummyHash(), password)
			metrics.LoginsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
			return nil, ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, err
	}

	if err := checkPassword([]byte(user.PasswordHash), password); err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		return nil, ErrInvalidCredentials
	}

	session, err := s.createSession(ctx, user)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	s.logger.Info("user logged in", slog.Int64("user_id", int64(user.ID)))
	return session, nil
}

// ValidateSession checks if a session token is valid and returns the session
func (s *Service) ValidateSession(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}

	session, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	if session.Expired(s.clock.Now()) {
		_ = s.sessions.DeleteSession(ctx, token)
		return nil, ErrInvalidSession
	}

	return session, nil
}

// Logout removes a session. Unknown or empty tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.DeleteSession(ctx, token)
}

// SessionDuration returns how long new sessions stay valid
func (s *Service) SessionDuration() time.Duration {
	return s.sessionDuration
}

// createSession creates a new session for a user
func (s *Service) createSession(ctx context.Context, user *model.User) (*model.Session, error) {
	now := s.clock.Now()

	session := &model.Session{
		Token:     s.random.Token(sessionTokenBytes),
		UserID:    user.ID,
		Username:  user.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *Service) getDummyHash() []byte {
	s.dummyHashOnce.Do(func() {
		s.dummyHash, _ = hashPassword("not-a-real-password", s.bcryptCost)
	})
	return s.dummyHash
}

// isInputError reports whether err was caused by the user's form input
func isInputError(err error) bool {
	return errors.Is(err, ErrInvalidUsername) ||
		errors.Is(err, ErrPasswordRequired) ||
		errors.Is(err, ErrPasswordMismatch) ||
		errors.Is(err, ErrUsernameExists)
}

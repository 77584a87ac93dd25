package storage

import (
	"context"

	"github.com/mcoot/vocabquiz/internal/model"
)

// Storage defines the interface for user and score persistence.
// Each backend (sqlite, postgres, memory) provides one implementation.
type Storage interface {
	// User operations
	CreateUser(ctx context.Context, username, passwordHash string) (*model.User, error)
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// Score operations

	// SaveBestScore stores result for the user when no score exists for the
	// category yet, or when result beats the stored best. The comparison and
	// write happen atomically. Reports whether a row was written.
	SaveBestScore(ctx context.Context, userID model.UserID, result model.Result) (bool, error)
	// GetScore returns the stored best for one category
	GetScore(ctx context.Context, userID model.UserID, category string) (*model.Score, error)
	// ListScores returns all of the user's scores ordered by category
	ListScores(ctx context.Context, userID model.UserID) ([]model.Score, error)

	// Ping checks the backend is reachable
	Ping(ctx context.Context) error
	Close() error
}

// SessionStore persists login sessions
type SessionStore interface {
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, token string) (*model.Session, error)
	DeleteSession(ctx context.Context, token string) error
	Close() error
}

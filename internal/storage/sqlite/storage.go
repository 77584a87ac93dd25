package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mcoot/vocabquiz/internal/model"
	"github.com/mcoot/vocabquiz/internal/storage"
)

// Config holds SQLite connection settings
type Config struct {
	// Path is the database file, created if missing
	Path string
	// MaxOpenConns bounds the pool. SQLite serialises writers, so 1 avoids SQLITE_BUSY.
	MaxOpenConns int
	// BusyTimeout is how long a statement waits on a locked database
	BusyTimeout time.Duration
}

// DefaultConfig returns defaults for local development
func DefaultConfig() Config {
	return Config{
		Path:         "database/users.db",
		MaxOpenConns: 1,
		BusyTimeout:  5 * time.Second,
	}
}

// Storage is a SQLite-backed implementation of the storage interface
type Storage struct {
	db     *sql.DB
	logger *slog.Logger
}

// New opens (and if needed creates) the database file and applies the schema
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Storage, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)",
		cfg.Path, cfg.BusyTimeout.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	logger.Info("sqlite storage ready", slog.String("path", cfg.Path))

	return &Storage{db: db, logger: logger}, nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, username, passwordHash string) (*model.User, error) {
	now := time.Now().UTC()

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, hash, created_at) VALUES (?, ?, ?)`,
		username, passwordHash, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, model.ErrUsernameExists
		}
		return nil, fmt.Errorf("could not create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("could not read user id: %w", err)
	}

	return &model.User{
		ID:           model.UserID(id),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}, nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, hash, created_at FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, hash, created_at FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("could not load user: %w", err)
	}
	return u, nil
}

// Score operations

// saveBestScoreQuery inserts the first result for a category, or overwrites
// the stored best only when the new result is strictly better. The DO UPDATE
// WHERE clause leaves zero rows affected when the result is not better.
const saveBestScoreQuery = `
	INSERT INTO scores (user_id, category, best_score, best_time)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (user_id, category) DO UPDATE SET
		best_score = excluded.best_score,
		best_time = excluded.best_time
	WHERE excluded.best_score > scores.best_score
		OR (excluded.best_score = scores.best_score AND excluded.best_time < scores.best_time)
`

func (s *Storage) SaveBestScore(ctx context.Context, userID model.UserID, result model.Result) (bool, error) {
	res, err := s.db.ExecContext(ctx, saveBestScoreQuery,
		userID, result.Category, result.Score, result.Time)
	if err != nil {
		return false, fmt.Errorf("could not save score: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not read affected rows: %w", err)
	}
	return n > 0, nil
}

func (s *Storage) GetScore(ctx context.Context, userID model.UserID, category string) (*model.Score, error) {
	sc := &model.Score{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, category, best_score, best_time
		FROM scores
		WHERE user_id = ? AND category = ?
	`, userID, category).Scan(&sc.ID, &sc.UserID, &sc.Category, &sc.BestScore, &sc.BestTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrScoreNotFound
		}
		return nil, fmt.Errorf("could not load score: %w", err)
	}
	return sc, nil
}

func (s *Storage) ListScores(ctx context.Context, userID model.UserID) ([]model.Score, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, category, best_score, best_time
		FROM scores
		WHERE user_id = ?
		ORDER BY category
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("could not list scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	scores := []model.Score{}
	for rows.Next() {
		var sc model.Score
		if err := rows.Scan(&sc.ID, &sc.UserID, &sc.Category, &sc.BestScore, &sc.BestTime); err != nil {
			return nil, fmt.Errorf("could not scan score: %w", err)
		}
		scores = append(scores, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not list scores: %w", err)
	}
	return scores, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying connection pool
func (s *Storage) Close() error {
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	var sqliteErr *moderncsqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}

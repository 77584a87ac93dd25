package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcoot/vocabquiz/internal/model"
	"github.com/mcoot/vocabquiz/internal/storage"
)

// uniqueViolation is the SQLSTATE for a UNIQUE constraint failure
const uniqueViolation = "23505"

// Config holds database connection settings
type Config struct {
	URL             string
	MinConns        int32
	MaxConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	ConnectTimeout  time.Duration
}

// DefaultConfig returns sensible pool defaults; URL must still be set
func DefaultConfig() Config {
	return Config{
		MinConns:        1,
		MaxConns:        10,
		MaxConnLifetime: 30 * time.Minute,
		MaxConnIdleTime: 5 * time.Minute,
		ConnectTimeout:  5 * time.Second,
	}
}

// Storage is a PostgreSQL-backed implementation of the storage interface
type Storage struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// New creates the connection pool, verifies it and applies the schema
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Storage, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(connectCtx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	logger.Info("postgres storage ready",
		slog.String("host", poolCfg.ConnConfig.Host),
		slog.String("database", poolCfg.ConnConfig.Database),
	)

	return &Storage{pool: pool, logger: logger}, nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, username, passwordHash string) (*model.User, error) {
	u := &model.User{Username: username, PasswordHash: passwordHash}

	err := s.pool.QueryRow(ctx, `
		INSERT INTO users (username, hash)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, username, passwordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, model.ErrUsernameExists
		}
		return nil, fmt.Errorf("could not create user: %w", err)
	}

	return u, nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, username, hash, created_at
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, username, hash, created_at
		FROM users
		WHERE username = $1
	`, username)
	return scanUser(row)
}

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("could not load user: %w", err)
	}
	return u, nil
}

// Score operations

// saveBestScoreQuery inserts the first result for a category, or overwrites
// the stored best only when the new result is strictly better. The command
// tag reports zero rows when the existing best is kept.
const saveBestScoreQuery = `
	INSERT INTO scores (user_id, category, best_score, best_time)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (user_id, category) DO UPDATE SET
		best_score = EXCLUDED.best_score,
		best_time = EXCLUDED.best_time
	WHERE EXCLUDED.best_score > scores.best_score
		OR (EXCLUDED.best_score = scores.best_score AND EXCLUDED.best_time < scores.best_time)
`

func (s *Storage) SaveBestScore(ctx context.Context, userID model.UserID, result model.Result) (bool, error) {
	tag, err := s.pool.Exec(ctx, saveBestScoreQuery, userID, result.Category, result.Score, result.Time)
	if err != nil {
		return false, fmt.Errorf("could not save score: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Storage) GetScore(ctx context.Context, userID model.UserID, category string) (*model.Score, error) {
	sc := &model.Score{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, user_id, category, best_score, best_time
		FROM scores
		WHERE user_id = $1 AND category = $2
	`, userID, category).Scan(&sc.ID, &sc.UserID, &sc.Category, &sc.BestScore, &sc.BestTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrScoreNotFound
		}
		return nil, fmt.Errorf("could not load score: %w", err)
	}
	return sc, nil
}

func (s *Storage) ListScores(ctx context.Context, userID model.UserID) ([]model.Score, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, category, best_score, best_time
		FROM scores
		WHERE user_id = $1
		ORDER BY category
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("could not list scores: %w", err)
	}
	defer rows.Close()

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
	return s.pool.Ping(ctx)
}

// Close closes the pool
func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

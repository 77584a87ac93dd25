package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/vocabquiz/internal/config"
	"github.com/mcoot/vocabquiz/internal/dependencies/clock"
	"github.com/mcoot/vocabquiz/internal/dependencies/random"
	"github.com/mcoot/vocabquiz/internal/metrics"
	"github.com/mcoot/vocabquiz/internal/services/auth"
	"github.com/mcoot/vocabquiz/internal/services/scoring"
	"github.com/mcoot/vocabquiz/internal/storage"
	"github.com/mcoot/vocabquiz/internal/storage/memory"
	"github.com/mcoot/vocabquiz/internal/storage/postgres"
	redisstorage "github.com/mcoot/vocabquiz/internal/storage/redis"
	"github.com/mcoot/vocabquiz/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory   = config.StorageMemory
	StorageTypeSQLite   = config.StorageSQLite
	StorageTypePostgres = config.StoragePostgres
)

// Session store type constants
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage  storage.Storage
	Sessions storage.SessionStore

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	AuthService    *auth.Service
	ScoringService *scoring.Service

	logger *slog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the persistence backend ("memory", "sqlite" or "postgres")
	// If empty, defaults to "memory"
	StorageType string
	// SQLiteConfig is used when StorageType is "sqlite" (optional, defaults apply)
	SQLiteConfig *sqlite.Config
	// PostgresConfig is required when StorageType is "postgres"
	PostgresConfig *postgres.Config
	// SessionStoreType selects where sessions live ("memory" or "redis")
	// If empty, defaults to "memory"
	SessionStoreType string
	// RedisConfig is required when SessionStoreType is "redis"
	RedisConfig *redisstorage.Config
}

// ConfigFromAppConfig maps loaded server configuration onto factory settings
func ConfigFromAppConfig(appCfg *config.AppConfig, logger *slog.Logger) Config {
	cfg := Config{
		Logger:      logger,
		StorageType: appCfg.StorageBackend(),
		AuthConfig: auth.Config{
			SessionDuration: appCfg.SessionTTL,
		},
	}

	switch cfg.StorageType {
	case StorageTypeSQLite:
		sqliteCfg := sqlite.DefaultConfig()
		sqliteCfg.Path = appCfg.SQLitePath
		cfg.SQLiteConfig = &sqliteCfg
	case StorageTypePostgres:
		pgCfg := postgres.DefaultConfig()
		pgCfg.URL = appCfg.DatabaseURL
		cfg.PostgresConfig = &pgCfg
	}

	if appCfg.RedisURL != "" {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = appCfg.RedisURL
		redisCfg.DefaultSessionTTL = appCfg.SessionTTL
		cfg.SessionStoreType = SessionStoreRedis
		cfg.RedisConfig = &redisCfg
	}

	return cfg
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	sessions, err := newSessionStore(ctx, cfg)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	logger.Info("storage configured",
		slog.String("storage", storageTypeOrDefault(cfg.StorageType)),
		slog.String("sessions", sessionTypeOrDefault(cfg.SessionStoreType)),
	)

	return newWithDependencies(store, sessions, clock.New(), random.New(), cfg.AuthConfig, logger), nil
}

func storageTypeOrDefault(t string) string {
	if t == "" {
		return StorageTypeMemory
	}
	return t
}

func sessionTypeOrDefault(t string) string {
	if t == "" {
		return SessionStoreMemory
	}
	return t
}

func newStorage(ctx context.Context, cfg Config, logger *slog.Logger) (storage.Storage, error) {
	switch storageTypeOrDefault(cfg.StorageType) {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeSQLite:
		sqliteCfg := sqlite.DefaultConfig()
		if cfg.SQLiteConfig != nil {
			sqliteCfg = *cfg.SQLiteConfig
		}
		return sqlite.New(ctx, sqliteCfg, logger)
	case StorageTypePostgres:
		if cfg.PostgresConfig == nil {
			return nil, errors.New("PostgresConfig required when StorageType is postgres")
		}
		return postgres.New(ctx, *cfg.PostgresConfig, logger)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory', 'sqlite' or 'postgres'", cfg.StorageType)
	}
}

func newSessionStore(ctx context.Context, cfg Config) (storage.SessionStore, error) {
	switch sessionTypeOrDefault(cfg.SessionStoreType) {
	case SessionStoreMemory:
		return memory.NewSessionStore(), nil
	case SessionStoreRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when SessionStoreType is redis")
		}
		return redisstorage.New(ctx, *cfg.RedisConfig)
	default:
		return nil, fmt.Errorf("invalid SessionStoreType %q: must be 'memory' or 'redis'", cfg.SessionStoreType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, sessions storage.SessionStore, clk clock.Clock, rnd random.Random, authCfg auth.Config, logger *slog.Logger) *App {
	return &App{
		Storage:        store,
		Sessions:       sessions,
		Clock:          clk,
		Random:         rnd,
		AuthService:    auth.New(store, sessions, clk, rnd, authCfg, logger),
		ScoringService: scoring.New(store, logger),
		logger:         logger,
	}
}

// CleanExpiredSessions drops expired sessions from an in-memory session
// store. Redis expires keys itself, so other stores report 0.
func (a *App) CleanExpiredSessions() int {
	store, ok := a.Sessions.(*memory.SessionStore)
	if !ok {
		return 0
	}
	removed := store.CleanExpired(a.Clock.Now())
	if removed > 0 {
		metrics.ActiveSessionsCleaned.Add(float64(removed))
		a.logger.Debug("expired sessions removed", slog.Int("count", removed))
	}
	return removed
}

// RunSessionJanitor calls CleanExpiredSessions every interval until ctx is done
func (a *App) RunSessionJanitor(ctx context.Context, interval time.Duration) {
	if _, ok := a.Sessions.(*memory.SessionStore); !ok {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.CleanExpiredSessions()
		}
	}
}

// Close releases the session store and storage
func (a *App) Close() error {
	return errors.Join(a.Sessions.Close(), a.Storage.Close())
}

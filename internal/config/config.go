package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// AppConfig holds the complete configuration for the server
type AppConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	// StorageType forces a backend; empty selects postgres when DatabaseURL
	// is set and sqlite otherwise.
	StorageType string `mapstructure:"storage_type"`
	DatabaseURL string `mapstructure:"database_url"`
	SQLitePath  string `mapstructure:"sqlite_path"`

	// RedisURL moves sessions to Redis when set
	RedisURL     string        `mapstructure:"redis_url"`
	SessionTTL   time.Duration `mapstructure:"session_ttl"`
	CookieSecure bool          `mapstructure:"cookie_secure"`

	CORSOrigins []string `mapstructure:"cors_origins"`
	StaticDir   string   `mapstructure:"static_dir"`
}

// LoadDotEnv loads variables from a .env file into the process environment.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Load loads configuration from an optional file and environment variables
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	// Default values
	v.SetDefault("host", "")
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("storage_type", "")
	v.SetDefault("database_url", "")
	v.SetDefault("sqlite_path", "database/users.db")
	v.SetDefault("redis_url", "")
	v.SetDefault("session_ttl", 7*24*time.Hour)
	v.SetDefault("cookie_secure", true)
	v.SetDefault("cors_origins", []string{})
	v.SetDefault("static_dir", "")

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Config file
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	for _, key := range []string{
		"host", "port", "log_level", "storage_type", "database_url", "sqlite_path",
		"redis_url", "session_ttl", "cookie_secure", "cors_origins", "static_dir",
	} {
		_ = v.BindEnv(key, strings.ToUpper(key))
	}

	var config AppConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// A single comma separated env value arrives as one element
	if len(config.CORSOrigins) == 1 && strings.Contains(config.CORSOrigins[0], ",") {
		config.CORSOrigins = strings.Split(config.CORSOrigins[0], ",")
	}
	for i, origin := range config.CORSOrigins {
		config.CORSOrigins[i] = strings.TrimSpace(origin)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *AppConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch c.StorageType {
	case "", StorageMemory, StorageSQLite:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return errors.New("database_url is required for postgres storage")
		}
	default:
		return fmt.Errorf("unknown storage_type %q", c.StorageType)
	}
	if c.StorageBackend() == StorageSQLite && c.SQLitePath == "" {
		return errors.New("sqlite_path is required for sqlite storage")
	}
	if c.SessionTTL <= 0 {
		return errors.New("session_ttl must be positive")
	}
	return nil
}

// StorageBackend resolves which persistence backend to use
func (c *AppConfig) StorageBackend() string {
	if c.StorageType != "" {
		return c.StorageType
	}
	if c.DatabaseURL != "" {
		return StoragePostgres
	}
	return StorageSQLite
}

// SlogLevel parses LogLevel
func (c *AppConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Addr returns the listen address
func (c *AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

package redis

import "time"

// Config holds Redis connection and session settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379/0)
	URL string

	PoolSize     int
	MinIdleConns int
	// ConnectTimeout bounds the startup ping
	ConnectTimeout time.Duration

	// KeyPrefix namespaces keys when the Redis database is shared
	KeyPrefix string
	// DefaultSessionTTL applies when a session carries no usable expiry
	DefaultSessionTTL time.Duration
}

// DefaultConfig returns defaults for a local Redis
func DefaultConfig() Config {
	return Config{
		URL:               "redis://localhost:6379",
		PoolSize:          10,
		MinIdleConns:      2,
		ConnectTimeout:    5 * time.Second,
		KeyPrefix:         "vocabquiz",
		DefaultSessionTTL: 7 * 24 * time.Hour,
	}
}

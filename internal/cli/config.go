package cli

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Environment variables read by quizctl
const (
	envServer    = "QUIZCTL_SERVER"
	envToken     = "QUIZCTL_TOKEN"
	envTokenFile = "QUIZCTL_TOKEN_FILE"
)

// Config is the resolved quizctl configuration. Flags override the
// environment, which overrides the defaults.
type Config struct {
	ServerURL string
	Token     string
	TokenFile string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config seeded from the environment
func DefaultConfig() *Config {
	cfg := &Config{
		ServerURL: "http://localhost:8080",
		Token:     os.Getenv(envToken),
		TokenFile: defaultTokenFile(),
		Output:    outputText,
	}
	if v := os.Getenv(envServer); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv(envTokenFile); v != "" {
		cfg.TokenFile = v
	}
	return cfg
}

// Validate checks the output format and server URL
func (c *Config) Validate() error {
	if c.Output != outputText && c.Output != outputJSON {
		return fmt.Errorf("unknown output format %q (want %s or %s)", c.Output, outputText, outputJSON)
	}
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server URL %q", c.ServerURL)
	}
	return nil
}

// LoadToken reads the saved token unless one was given explicitly.
// A missing token file is not an error.
func (c *Config) LoadToken() error {
	if c.Token != "" {
		return nil
	}

	data, err := os.ReadFile(c.TokenFile)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("read token file: %w", err)
	}

	c.Token = strings.TrimSpace(string(data))
	return nil
}

// SaveToken stores token for later invocations. The file is readable by
// the owner only.
func (c *Config) SaveToken(token string) error {
	c.Token = token

	if err := os.MkdirAll(filepath.Dir(c.TokenFile), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	return os.WriteFile(c.TokenFile, []byte(token+"\n"), 0o600)
}

// ClearToken forgets the current token and removes the token file
func (c *Config) ClearToken() error {
	c.Token = ""

	if err := os.Remove(c.TokenFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".quizctl", "token")
	}
	return filepath.Join(home, ".quizctl", "token")
}

package model

import "time"

// Session is the server-side record behind a session cookie
type Session struct {
	Token     string    `json:"token"`
	UserID    UserID    `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is no longer valid at now
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

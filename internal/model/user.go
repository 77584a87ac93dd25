package model

import (
	"regexp"
	"time"
)

// UserID uniquely identifies a registered user. Assigned by the store.
type UserID int64

// User is a registered account
type User struct {
	ID           UserID
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
}

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

// ValidUsername reports whether username is 3-20 letters, digits or underscores
func ValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameExists = errors.New("username already exists")

	// Score errors
	ErrScoreNotFound = errors.New("score not found")
	ErrInvalidResult = errors.New("invalid result")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
)

package response

import (
	"time"

	"github.com/mcoot/vocabquiz/internal/model"
)

// User represents a user in API responses
type User struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:        int64(u.ID),
		Username:  u.Username,
		CreatedAt: &u.CreatedAt,
	}
}

// UserFromSession builds a User from the identity carried by a session
func UserFromSession(s *model.Session) User {
	return User{
		ID:       int64(s.UserID),
		Username: s.Username,
	}
}

// UserResponse wraps a single user
type UserResponse struct {
	User User `json:"user"`
}

// AuthResponse is the response for the login endpoint
type AuthResponse struct {
	User         User      `json:"user"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *model.Session) AuthResponse {
	return AuthResponse{
		User:         UserFromSession(s),
		SessionToken: s.Token,
		ExpiresAt:    s.ExpiresAt,
	}
}

// Score represents a best score in API responses
type Score struct {
	Category  string  `json:"category"`
	BestScore int     `json:"best_score"`
	BestTime  float64 `json:"best_time"`
}

// ScoreFromModel converts model.Score
func ScoreFromModel(s model.Score) Score {
	return Score{
		Category:  s.Category,
		BestScore: s.BestScore,
		BestTime:  s.BestTime,
	}
}

// ScoreResponse wraps a single best score
type ScoreResponse struct {
	Score Score `json:"score"`
}

// ScoreList is the response for listing a user's scores
type ScoreList struct {
	Scores []Score `json:"scores"`
}

// ScoreListFromModel converts a slice of model.Score
func ScoreListFromModel(scores []model.Score) ScoreList {
	list := ScoreList{Scores: make([]Score, len(scores))}
	for i, s := range scores {
		list.Scores[i] = ScoreFromModel(s)
	}
	return list
}

// SubmitScoreResponse is the response after submitting a result
type SubmitScoreResponse struct {
	Status  string `json:"status"`
	Updated bool   `json:"updated"`
}

// HealthResponse reports service health
type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage,omitempty"`
}

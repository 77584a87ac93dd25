package request

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
)

// maxBodyBytes bounds every API request body
const maxBodyBytes = 16 << 10

// Decode reads a single JSON object from the request body into dst.
// Unknown fields are rejected.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// RegisterRequest is the request body for registering a user
type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SubmitScoreRequest is the request body for submitting a quiz result
type SubmitScoreRequest struct {
	Category *string  `json:"category"`
	Score    *int     `json:"score"`
	Time     *float64 `json:"time"`
}

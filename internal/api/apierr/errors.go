package apierr

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/mcoot/vocabquiz/internal/model"
	"github.com/mcoot/vocabquiz/internal/services/auth"
)

// APIError is the body of every API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidUsername    = "INVALID_USERNAME"
	CodePasswordRequired   = "PASSWORD_REQUIRED"
	CodePasswordMismatch   = "PASSWORD_MISMATCH"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeNotFound           = "NOT_FOUND"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError is an APIError bound to the status it is sent with
type httpError struct {
	status   int
	apiError APIError
}

func (e *httpError) Error() string {
	return e.apiError.Message
}

var internalError = &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}

// Domain errors matched with errors.Is, first match wins
var mappings = []struct {
	target error
	*httpError
}{
	{auth.ErrInvalidUsername, &httpError{http.StatusBadRequest, APIError{CodeInvalidUsername, "Invalid username. Use 3-20 letters, numbers, or underscores only."}}},
	{auth.ErrPasswordRequired, &httpError{http.StatusBadRequest, APIError{CodePasswordRequired, "Password is required"}}},
	{auth.ErrPasswordMismatch, &httpError{http.StatusBadRequest, APIError{CodePasswordMismatch, "Passwords do not match"}}},
	{auth.ErrUsernameExists, &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already taken"}}},
	{auth.ErrInvalidCredentials, &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}},
	{auth.ErrInvalidSession, &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}},
	{model.ErrScoreNotFound, &httpError{http.StatusNotFound, APIError{CodeNotFound, "No score recorded for this category"}}},
	{model.ErrInvalidResult, &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "category must be 1-64 characters and time must not be negative"}}},
}

// WriteError writes err as a JSON error envelope. Unrecognised errors
// become a generic 500 so driver details never reach the client.
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Cache-Control", "no-store")
	if he.status == http.StatusUnauthorized {
		h.Set("WWW-Authenticate", `Bearer realm="vocabquiz"`)
	}
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status WriteError would use for err
func Status(err error) int {
	return toHTTPError(err).status
}

func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}
	for _, m := range mappings {
		if errors.Is(err, m.target) {
			return m.httpError
		}
	}
	return internalError
}

// NewInvalidRequestError reports a malformed request body or parameter
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError reports a request with no credentials
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError reports an unexpected failure without details
func NewInternalError() error {
	return internalError
}

package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/goccy/go-json"
)

// Output formats
const (
	outputText = "text"
	outputJSON = "json"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == outputJSON {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == outputJSON {
		o.printJSON(map[string]string{"message": msg})
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case AuthResult:
		o.printAuthResult(v)
	case Score:
		o.printScoreList(ScoreList{Scores: []Score{v}})
	case ScoreList:
		o.printScoreList(v)
	case SubmitResult:
		o.printSubmitResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// UserResult wraps a single user
type UserResult struct {
	User User `json:"user"`
}

// AuthResult combines user and token
type AuthResult struct {
	User         User      `json:"user"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Score response type
type Score struct {
	Category  string  `json:"category"`
	BestScore int     `json:"best_score"`
	BestTime  float64 `json:"best_time"`
}

// ScoreResult wraps a single score
type ScoreResult struct {
	Score Score `json:"score"`
}

// ScoreList response type
type ScoreList struct {
	Scores []Score `json:"scores"`
}

// SubmitResult response type
type SubmitResult struct {
	Status  string `json:"status"`
	Updated bool   `json:"updated"`
}

// HealthResult response type
type HealthResult struct {
	Status  string `json:"status"`
	Storage string `json:"storage,omitempty"`
}

func (o *Output) printUser(u User) {
	_, _ = fmt.Fprintf(o.w, "User: %s (%d)\n", u.Username, u.ID)
	if u.CreatedAt != nil {
		_, _ = fmt.Fprintf(o.w, "Registered: %s\n", u.CreatedAt.Format(time.RFC3339))
	}
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printUser(a.User)
	_, _ = fmt.Fprintf(o.w, "Token: %s\n", a.SessionToken)
	_, _ = fmt.Fprintf(o.w, "Expires: %s\n", a.ExpiresAt.Format(time.RFC3339))
}

func (o *Output) printScoreList(l ScoreList) {
	if len(l.Scores) == 0 {
		_, _ = fmt.Fprintln(o.w, "No scores yet")
		return
	}

	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "CATEGORY\tBEST SCORE\tBEST TIME")
	for _, s := range l.Scores {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\n", s.Category, s.BestScore, strconv.FormatFloat(s.BestTime, 'f', -1, 64))
	}
	_ = tw.Flush()
}

func (o *Output) printSubmitResult(r SubmitResult) {
	if r.Updated {
		_, _ = fmt.Fprintln(o.w, "New best score saved")
	} else {
		_, _ = fmt.Fprintln(o.w, "Result recorded; existing best score kept")
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	_, _ = fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	if h.Storage != "" {
		_, _ = fmt.Fprintf(o.w, "Storage: %s\n", h.Storage)
	}
}

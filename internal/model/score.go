package model

// Score is the best result a user has achieved in one category.
// There is at most one Score per (UserID, Category).
type Score struct {
	ID        int64
	UserID    UserID
	Category  string
	BestScore int
	BestTime  float64 // seconds, lower is better
}

// Result is a single quiz outcome submitted by a player
type Result struct {
	Category string
	Score    int
	Time     float64
}

// Beats reports whether r strictly improves on the stored best:
// a higher score, or an equal score reached in less time.
func (r Result) Beats(best Score) bool {
	if r.Score != best.BestScore {
		return r.Score > best.BestScore
	}
	return r.Time < best.BestTime
}

// Validate checks the result can be stored
func (r Result) Validate() error {
	if r.Category == "" || len(r.Category) > 64 {
		return ErrInvalidResult
	}
	if r.Time < 0 {
		return ErrInvalidResult
	}
	return nil
}

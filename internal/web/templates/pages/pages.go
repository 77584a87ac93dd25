// Package pages holds the full-page templ components. Edit the .templ
// files and regenerate the _templ.go files.
package pages

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.977 generate -path ..

import (
	"strconv"

	"github.com/mcoot/vocabquiz/internal/web/templates/layout"
)

// HomeData is the data for the landing page
type HomeData struct {
	layout.PageData
}

// LoginData is the data for the login page
type LoginData struct {
	layout.PageData
}

// RegisterData is the data for the registration page
type RegisterData struct {
	layout.PageData
}

// ScoreRow is one category line on the account page
type ScoreRow struct {
	Category  string
	BestScore int
	BestTime  float64
}

// AccountData is the data for the account page
type AccountData struct {
	layout.PageData
	Scores []ScoreRow
}

// formatSeconds prints a time without trailing zeros (3.2, not 3.200000)
func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package middleware

import (
	"net/http"
	"net/url"
	"time"

	"github.com/mcoot/vocabquiz/internal/model"
)

const (
	// SessionCookieName is the cookie carrying the session token
	SessionCookieName = "session"

	flashCookieName = "flash"
	flashMaxAge     = 60
)

// Cookies writes the cookies the web surface uses. Every cookie is
// HttpOnly, SameSite=Lax and scoped to "/"; Secure follows the deployment.
type Cookies struct {
	Secure bool
}

// SetSession stores the session token for the lifetime of the session
func (c Cookies) SetSession(w http.ResponseWriter, session *model.Session) {
	maxAge := int(session.ExpiresAt.Sub(session.CreatedAt).Seconds())
	http.SetCookie(w, c.cookie(SessionCookieName, session.Token, maxAge))
}

// ClearSession removes the session cookie
func (c Cookies) ClearSession(w http.ResponseWriter) {
	c.clear(w, SessionCookieName)
}

// SetFlash queues a message for the next page view. The value is encoded
// as "type:message" and escaped so any text survives the cookie.
func (c Cookies) SetFlash(w http.ResponseWriter, flashType, message string) {
	http.SetCookie(w, c.cookie(flashCookieName, url.QueryEscape(flashType+":"+message), flashMaxAge))
}

func (c Cookies) clearFlash(w http.ResponseWriter) {
	c.clear(w, flashCookieName)
}

func (c Cookies) clear(w http.ResponseWriter, name string) {
	cookie := c.cookie(name, "", -1)
	cookie.Expires = time.Unix(0, 0)
	http.SetCookie(w, cookie)
}

func (c Cookies) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

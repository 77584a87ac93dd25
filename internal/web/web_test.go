package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/vocabquiz/internal/factory"
	"github.com/mcoot/vocabquiz/internal/testutil"
	"github.com/mcoot/vocabquiz/internal/web"
	"github.com/mcoot/vocabquiz/internal/web/middleware"
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
	cookies cookieJar
}

// newWebTestServer creates a new test server with all dependencies wired
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	app := factory.NewTestApp()

	router := web.NewRouter(web.RouterConfig{
		Logger:         testutil.NopLogger(),
		AuthService:    app.AuthService,
		ScoringService: app.ScoringService,
		StaticDir:      "static",
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
		cookies: newCookieJar(),
	}
}

// do sends a request with the jar's cookies and records Set-Cookie headers
func (ts *webTestServer) do(req *http.Request) *httptest.ResponseRecorder {
	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	ts.cookies.extract(rr)
	return rr
}

// get makes a GET request
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.do(httptest.NewRequest(http.MethodGet, path, nil))
}

// post makes a POST request with form data
func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(http.MethodPost, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return ts.do(req)
}

// postJSON makes a POST request with a raw JSON body
func (ts *webTestServer) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return ts.do(req)
}

// followRedirect follows a redirect and returns the response
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	location := rr.Header().Get("Location")
	require.NotEmpty(ts.t, location, "Expected Location header for redirect")
	return ts.get(location)
}

// html parses a response body as an HTML document
func (ts *webTestServer) html(rr *httptest.ResponseRecorder) *goquery.Document {
	ts.t.Helper()
	doc, err := goquery.NewDocumentFromReader(rr.Body)
	require.NoError(ts.t, err)
	return doc
}

// decodeJSON decodes a JSON object response body
func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), "body: %s", rr.Body.String())
	return body
}

// cookieJar keeps the cookies a browser would send back, along with the
// attributes they were set with
type cookieJar map[string]*http.Cookie

func newCookieJar() cookieJar {
	return cookieJar{}
}

func (j cookieJar) addTo(req *http.Request) {
	for name, c := range j {
		req.AddCookie(&http.Cookie{Name: name, Value: c.Value})
	}
}

// extract applies the response's Set-Cookie headers; MaxAge < 0 deletes
func (j cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, c := range rr.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(j, c.Name)
			continue
		}
		j[c.Name] = c
	}
}

// set plants a cookie as if the server had sent it
func (j cookieJar) set(name, value string) {
	j[name] = &http.Cookie{Name: name, Value: value}
}

// session returns the session cookie, or nil when logged out
func (j cookieJar) session() *http.Cookie {
	return j[middleware.SessionCookieName]
}

func (j cookieJar) hasSession() bool {
	return j.session() != nil
}

// Helper functions for common test operations

// register submits the registration form and expects a redirect
func (ts *webTestServer) register(username, password, confirm string) *httptest.ResponseRecorder {
	ts.t.Helper()
	form := url.Values{
		"username":         {username},
		"password":         {password},
		"confirm_password": {confirm},
	}
	rr := ts.post("/register", form)
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after registration")
	return rr
}

// login submits the login form and expects a redirect
func (ts *webTestServer) login(username, password string) *httptest.ResponseRecorder {
	ts.t.Helper()
	form := url.Values{
		"username": {username},
		"password": {password},
	}
	rr := ts.post("/login", form)
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after login")
	return rr
}

// registerAndLogin creates an account and signs in as it
func (ts *webTestServer) registerAndLogin(username, password string) {
	ts.t.Helper()
	ts.register(username, password, password)
	rr := ts.login(username, password)
	require.Equal(ts.t, "/", rr.Header().Get("Location"))
	require.True(ts.t, ts.cookies.hasSession(), "Expected session cookie to be set")
}

// Assertion helpers

func assertContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	assert.Positive(t, doc.Find(selector).Length(), "no element matches %q", selector)
}

func assertNotContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	assert.Zero(t, doc.Find(selector).Length(), "unexpected element matching %q", selector)
}

func assertContainsText(t *testing.T, doc *goquery.Document, selector, text string) {
	t.Helper()
	el := doc.Find(selector)
	if assert.Positive(t, el.Length(), "no element matches %q", selector) {
		assert.Contains(t, el.Text(), text, "text of %q", selector)
	}
}

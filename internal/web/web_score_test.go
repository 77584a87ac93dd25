package web_test

import (
	"net/http"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveScoreRequiresLogin(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.postJSON("/save_score", `{"category":"math","score":5,"time":3.2}`)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Empty(t, rr.Header().Get("Location"))
	assert.Equal(t, map[string]string{"status": "error", "message": "not_logged_in"}, decodeJSON(t, rr))
}

func TestSaveScoreRejectsBadBodies(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerAndLogin("alice123", "pass1")

	for _, body := range []string{
		`not json`,
		`{"category":"math","score":5}`,
		`{"category":"","score":5,"time":1}`,
		`{"category":"math","score":"five","time":1}`,
	} {
		rr := ts.postJSON("/save_score", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
		assert.Equal(t, "invalid_request", decodeJSON(t, rr)["message"], body)
	}
}

// Register, log in, save a score and see it on the account page
func TestScoreFlow(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerAndLogin("alice123", "pass1")

	rr := ts.postJSON("/save_score", `{"category":"math","score":5,"time":3.2}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, map[string]string{"status": "ok"}, decodeJSON(t, rr))

	rr = ts.get("/account")
	require.Equal(t, http.StatusOK, rr.Code)

	doc := ts.html(rr)
	rows := doc.Find("tr.score-row")
	require.Equal(t, 1, rows.Length())
	assert.Equal(t, "math", rows.Find(".category").Text())
	assert.Equal(t, "5", rows.Find(".best-score").Text())
	assert.Equal(t, "3.2", rows.Find(".best-time").Text())
}

func TestSaveScoreKeepsBest(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerAndLogin("alice123", "pass1")

	for _, body := range []string{
		`{"category":"math","score":10,"time":5.0}`,
		`{"category":"math","score":10,"time":4.0}`,
		`{"category":"math","score":9,"time":1.0}`,
	} {
		rr := ts.postJSON("/save_score", body)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "ok", decodeJSON(t, rr)["status"])
	}

	doc := ts.html(ts.get("/account"))
	assert.Equal(t, "10", doc.Find("tr.score-row .best-score").Text())
	assert.Equal(t, "4", doc.Find("tr.score-row .best-time").Text())
}

func TestAccountIsOrderedAndScopedToUser(t *testing.T) {
	ts := newWebTestServer(t)

	ts.registerAndLogin("bob_99", "pw")
	ts.postJSON("/save_score", `{"category":"history","score":7,"time":2}`)
	ts.get("/logout")

	ts.registerAndLogin("alice123", "pw")
	ts.postJSON("/save_score", `{"category":"zoology","score":1,"time":9}`)
	ts.postJSON("/save_score", `{"category":"art","score":2,"time":8}`)

	doc := ts.html(ts.get("/account"))

	var categories []string
	doc.Find("tr.score-row .category").Each(func(_ int, sel *goquery.Selection) {
		categories = append(categories, sel.Text())
	})
	assert.Equal(t, []string{"art", "zoology"}, categories)
}

func TestAccountEmpty(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerAndLogin("alice123", "pass1")

	doc := ts.html(ts.get("/account"))
	assertContainsElement(t, doc, "p.empty")
	assertNotContainsElement(t, doc, "tr.score-row")
}

func TestAccountRequiresLogin(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/account")

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
}

func TestHomePage(t *testing.T) {
	ts := newWebTestServer(t)

	doc := ts.html(ts.get("/"))
	assertContainsElement(t, doc, "a[href='/register']")
	assertNotContainsElement(t, doc, "a[href='/account']")

	ts.registerAndLogin("alice123", "pass1")
	doc = ts.html(ts.get("/"))
	assertContainsText(t, doc, ".username", "alice123")
	assertContainsElement(t, doc, "a[href='/account']")
}

func TestStaticFiles(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/static/style.css")
	assert.Equal(t, http.StatusOK, rr.Code)
}

package ui

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/tabdash/internal/panel"
)

const people = `name,age,lat,lon
ann,31,59.91,10.75
bob,,48.85,2.35
cid,45,40.71,-74.00
dee,28,35.68,139.69
eve,52,-33.87,151.21
`

// =============================================================================
// Test Setup Helpers
// =============================================================================

// browser replays the session cookie across requests.
type browser struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
}

func newTestServer(t *testing.T, cfg Config) (*Server, http.Handler) {
	t.Helper()
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = "0123456789abcdef0123456789abcdef"
	}
	if cfg.Panel == (panel.Options{}) {
		cfg.Panel = panel.DefaultOptions()
	}
	srv := NewServer(cfg)
	h, err := srv.Handler()
	require.NoError(t, err)
	return srv, h
}

func newBrowser(t *testing.T, h http.Handler) *browser {
	return &browser{t: t, handler: h}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	b.handler.ServeHTTP(rec, req)
	if cs := rec.Result().Cookies(); len(cs) > 0 {
		b.cookies = cs
	}
	return rec
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) upload(name string, content []byte) *httptest.ResponseRecorder {
	b.t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", name)
	require.NoError(b.t, err)
	_, err = fw.Write(content)
	require.NoError(b.t, err)
	require.NoError(b.t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return b.do(req)
}

// =============================================================================
// Navigation
// =============================================================================

func TestRootRedirectsToUpload(t *testing.T) {
	_, h := newTestServer(t, Config{})
	rec := newBrowser(t, h).get("/")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/panel/upload", rec.Header().Get("Location"))
}

func TestUnknownPanel(t *testing.T) {
	_, h := newTestServer(t, Config{})
	rec := newBrowser(t, h).get("/panel/settings")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSidebarListsAllPanels(t *testing.T) {
	_, h := newTestServer(t, Config{})
	rec := newBrowser(t, h).get("/panel/upload")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Upload Dataset - Data Analysis Dashboard</title>")
	for _, k := range panel.Kinds() {
		assert.Contains(t, body, `href="/panel/`+k.Slug()+`"`)
	}
	assert.Contains(t, body, `<li class="active"><a href="/panel/upload">1. Upload File</a></li>`)
}

func TestPanelsWithoutTableRenderNothing(t *testing.T) {
	_, h := newTestServer(t, Config{})
	b := newBrowser(t, h)
	for _, k := range panel.Kinds()[1:] {
		rec := b.get("/panel/" + k.Slug())
		require.Equal(t, http.StatusOK, rec.Code, k.Slug())
		body := rec.Body.String()
		assert.NotContains(t, body, `class="warning"`, k.Slug())
		assert.NotContains(t, body, "<table>", k.Slug())
		assert.NotContains(t, body, "<img", k.Slug())
	}
}

// =============================================================================
// Upload flow
// =============================================================================

func TestUploadCSVAndBrowsePanels(t *testing.T) {
	_, h := newTestServer(t, Config{})
	b := newBrowser(t, h)

	rec := b.upload("people.csv", []byte(people))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), UploadSuccess)
	assert.Contains(t, rec.Body.String(), "5 rows, 4 columns")

	rec = b.get("/panel/upload")
	assert.Contains(t, rec.Body.String(), "Current file: <strong>people.csv</strong>")
	assert.Contains(t, rec.Body.String(), ", loaded ")

	rec = b.get("/panel/overview")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Shape of the dataset: 5 rows, 4 columns")
	assert.Contains(t, rec.Body.String(), "<tr><td>age</td><td>1</td></tr>")

	rec = b.get("/panel/eda")
	assert.Contains(t, rec.Body.String(), "<li>name</li>")

	rec = b.get("/panel/correlation")
	assert.Contains(t, rec.Body.String(), "data:image/svg+xml;base64,")
	assert.NotContains(t, rec.Body.String(), panel.WarnTooFewColumns)

	rec = b.get("/panel/correlation?" + url.Values{"submitted": {"1"}, "cols": {"age"}}.Encode())
	assert.Contains(t, rec.Body.String(), panel.WarnTooFewColumns)

	rec = b.get("/panel/pairplot?" + url.Values{"submitted": {"1"}}.Encode())
	assert.Contains(t, rec.Body.String(), panel.WarnTooFewColumns)

	rec = b.get("/panel/histogram?col=lat")
	assert.Contains(t, rec.Body.String(), "Histogram of lat")

	rec = b.get("/panel/geo")
	assert.Contains(t, rec.Body.String(), "L.map")
	assert.Contains(t, rec.Body.String(), "5 points plotted from lat / lon")
}

func TestUploadXLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"city", "population"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"oslo", 709000}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"paris", 2103000}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, h := newTestServer(t, Config{})
	b := newBrowser(t, h)
	rec := b.upload("cities.xlsx", buf.Bytes())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "2 rows, 2 columns")

	rec = b.get("/panel/correlation")
	assert.Contains(t, rec.Body.String(), panel.WarnTooFewColumns)
	rec = b.get("/panel/histogram")
	assert.Contains(t, rec.Body.String(), "Histogram of population")
}

func TestUploadReplacesPreviousTable(t *testing.T) {
	srv, h := newTestServer(t, Config{})
	b := newBrowser(t, h)
	b.upload("first.csv", []byte("a,b\n1,2\n"))
	b.upload("second.csv", []byte(people))
	assert.Equal(t, 1, srv.Store().Len())

	body := b.get("/panel/overview").Body.String()
	assert.Contains(t, body, "5 rows, 4 columns")
	assert.Contains(t, body, "second.csv")
	assert.NotContains(t, body, "first.csv")
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	srv, h := newTestServer(t, Config{})
	b := newBrowser(t, h)
	rec := b.upload("notes.txt", []byte("a,b\n1,2\n"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unsupported file type")
	assert.NotContains(t, rec.Body.String(), UploadSuccess)
	assert.Equal(t, 1, srv.Store().Len())
	assert.NotContains(t, b.get("/panel/overview").Body.String(), "Shape of the dataset")
}

func TestUploadParseFailure(t *testing.T) {
	_, h := newTestServer(t, Config{})
	b := newBrowser(t, h)
	rec := b.upload("broken.xlsx", []byte("this is not a zip archive"))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Could not parse broken.xlsx")
}

func TestUploadFailureKeepsPreviousTable(t *testing.T) {
	_, h := newTestServer(t, Config{})
	b := newBrowser(t, h)
	b.upload("people.csv", []byte(people))
	b.upload("broken.xlsx", []byte("nope"))
	assert.Contains(t, b.get("/panel/overview").Body.String(), "5 rows, 4 columns")
}

func TestUploadWithoutFile(t *testing.T) {
	_, h := newTestServer(t, Config{})
	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
	rec := newBrowser(t, h).do(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please choose a CSV or Excel file")
}

func TestUploadSizeLimit(t *testing.T) {
	srv, h := newTestServer(t, Config{MaxUploadBytes: 64})
	b := newBrowser(t, h)
	rec := b.upload("big.csv", []byte(strings.Repeat("a,b\n", 200)))
	assert.GreaterOrEqual(t, rec.Code, 400)
	assert.NotContains(t, rec.Body.String(), UploadSuccess)
	assert.NotContains(t, b.get("/panel/overview").Body.String(), "Shape of the dataset")
	assert.Equal(t, 1, srv.Store().Len())
}

// =============================================================================
// Sessions
// =============================================================================

func TestSessionsAreIsolated(t *testing.T) {
	_, h := newTestServer(t, Config{})
	alice := newBrowser(t, h)
	bob := newBrowser(t, h)
	alice.upload("people.csv", []byte(people))

	assert.Contains(t, alice.get("/panel/overview").Body.String(), "Shape of the dataset")
	assert.NotContains(t, bob.get("/panel/overview").Body.String(), "Shape of the dataset")
}

func TestActiveSessionOutlivesTTL(t *testing.T) {
	if testing.Short() {
		t.Skip("waits on cookie expiry")
	}
	_, h := newTestServer(t, Config{SessionTTL: 2 * time.Second})
	b := newBrowser(t, h)
	b.upload("people.csv", []byte(people))

	for i := 0; i < 4; i++ {
		time.Sleep(time.Second)
		assert.Contains(t, b.get("/panel/overview").Body.String(), "Shape of the dataset", "request %d", i+1)
	}
}

func TestReset(t *testing.T) {
	_, h := newTestServer(t, Config{})
	b := newBrowser(t, h)
	b.upload("people.csv", []byte(people))

	rec := b.do(httptest.NewRequest(http.MethodPost, "/reset", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/panel/upload", rec.Header().Get("Location"))
	assert.NotContains(t, b.get("/panel/overview").Body.String(), "Shape of the dataset")
}

func TestHealth(t *testing.T) {
	_, h := newTestServer(t, Config{})
	b := newBrowser(t, h)
	b.get("/panel/upload")

	rec := b.get("/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "ok", got["status"])
	assert.EqualValues(t, 1, got["sessions"])
}

func TestSweepInterval(t *testing.T) {
	assert.Zero(t, sweepInterval(0))
	assert.Equal(t, time.Minute, sweepInterval(30*time.Second))
	assert.Equal(t, 30*time.Minute, sweepInterval(time.Hour))
}

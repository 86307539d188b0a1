package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oaspick/validator"
)

func getPage(t *testing.T, h http.Handler, req *http.Request) (*httptest.ResponseRecorder, *goquery.Document) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	return rec, doc
}

func postForm(t *testing.T, h http.Handler, doc, sel string) (*httptest.ResponseRecorder, *goquery.Document) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(formValues(doc, sel).Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return getPage(t, h, req)
}

func TestPage(t *testing.T) {
	h := newTestServer(t, testConfig(), nil)
	rec, doc := getPage(t, h, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Swagger Extractor", doc.Find("title").Text())
	assert.Equal(t, 1, doc.Find("textarea#document").Length())
	assert.Equal(t, 1, doc.Find("input#selector").Length())
	assert.Equal(t, "Extract methods to see Swagger preview here", strings.TrimSpace(doc.Find("#preview-empty").Text()))

	debounce, _ := doc.Find(".preview").Attr("data-debounce-ms")
	assert.Equal(t, "500", debounce)

	var scripts []string
	doc.Find("script[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		scripts = append(scripts, src)
	})
	assert.Equal(t, []string{"https://cdn.example.com/swagger-ui/swagger-ui-bundle.js", "/static/app.js"}, scripts)
}

func TestPageUnknownPath(t *testing.T) {
	h := newTestServer(t, testConfig(), nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/elsewhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFormExtraction(t *testing.T) {
	h := newTestServer(t, testConfig(), nil)
	rec, doc := postForm(t, h, petstore, "post:/pet,get:/user/{username}")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, validator.MsgValid, doc.Find("#status").Text())
	assert.True(t, doc.Find("#status").HasClass("ok"))
	assert.Equal(t, "post:/pet,get:/user/{username}", doc.Find("#selector").AttrOr("value", ""))
	assert.Contains(t, doc.Find("#result").Text(), `"operationId": "addPet"`)
	assert.Contains(t, doc.Find("#document").Text(), `"updatePet"`, "the input is kept")

	rows := doc.Find("#operations tbody tr")
	require.Equal(t, 2, rows.Length())
	first := rows.Eq(0)
	assert.Equal(t, "POST", first.Find(".method").Text())
	assert.Equal(t, "/pet", first.Find(".path").Text())
	assert.True(t, first.HasClass("deprecated"))
	assert.True(t, first.HasClass("method-post"))

	second := rows.Eq(1)
	assert.Equal(t, "GET", second.Find(".method").Text())
	assert.Equal(t, 1, second.Find(".description b").Length(), "safe markup is kept")
	assert.Equal(t, 0, second.Find(".description script").Length(), "scripts are stripped")
	desc, err := second.Find(".description").Html()
	require.NoError(t, err)
	assert.NotContains(t, desc, "alert(1)")
}

func TestFormErrors(t *testing.T) {
	h := newTestServer(t, testConfig(), nil)

	tests := []struct {
		name   string
		doc    string
		sel    string
		status int
		text   string
		state  string
	}{
		{"missing document", "", "*", http.StatusBadRequest, "Error: Please provide Swagger JSON input", ""},
		{"invalid json", "{oops", "*", http.StatusUnprocessableEntity, "Error: invalid character 'o' looking for beginning of object key string", "Invalid JSON: invalid character 'o' looking for beginning of object key string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, doc := postForm(t, h, tt.doc, tt.sel)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.text, doc.Find("#result").Text())
			assert.Equal(t, tt.text, doc.Find("#preview-error").Text())
			assert.Equal(t, tt.state, doc.Find("#status").Text())
			assert.Equal(t, 0, doc.Find("#operations").Length())
		})
	}
}

func TestFormWarningStillExtracts(t *testing.T) {
	h := newTestServer(t, testConfig(), nil)
	rec, doc := postForm(t, h, `{"paths":{"/a":{"get":{"summary":"A"}}}}`, "*")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Warning: "+validator.MsgMissingMarker, doc.Find("#status").Text())
	assert.True(t, doc.Find("#status").HasClass("warning"))
	assert.Equal(t, 1, doc.Find("#operations tbody tr").Length())
	assert.Equal(t, "A", doc.Find("#operations .summary").Text())
}

func TestSanitizeDescription(t *testing.T) {
	assert.Empty(t, sanitizeDescription("  "))
	assert.Equal(t, "<b>bold</b>", string(sanitizeDescription("<b>bold</b>")))
	assert.Equal(t, "x", string(sanitizeDescription(`<img src=x onerror=alert(1)>x`)))
	out := string(sanitizeDescription(`<a href="https://example.com" onclick="evil()">docs</a>`))
	assert.Contains(t, out, `href="https://example.com"`)
	assert.Contains(t, out, `rel="nofollow`)
	assert.NotContains(t, out, "onclick")
}

func TestFormBodyErrors(t *testing.T) {
	cfg := testConfig()
	cfg.MaxDocumentSize = 64
	h := newTestServer(t, cfg, nil)

	tests := []struct {
		name   string
		body   string
		status int
		text   string
	}{
		{"oversized", formValues(strings.Repeat("x", 200), "*").Encode(), http.StatusRequestEntityTooLarge, "Error: request body too large"},
		{"malformed", "document=%zz&selector=*", http.StatusBadRequest, "Error: invalid form body: invalid URL escape \"%zz\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec, doc := getPage(t, h, req)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.text, doc.Find("#result").Text())
		})
	}
}

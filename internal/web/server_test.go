package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"garim-lab/internal/ai"
	"garim-lab/internal/dashboard"
	"garim-lab/internal/model"
	"garim-lab/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedFeed map[model.Category][]model.NewsItem

func (f fixedFeed) FetchByCategory(_ context.Context, cat model.Category) []model.NewsItem {
	return f[cat]
}

func (f fixedFeed) ResolveCategory(v string) (model.Category, bool) {
	if v == "경제" {
		return model.CategoryEconomy, true
	}
	return model.ParseCategory(v)
}

type cannedProvider struct{ reply string }

func (p cannedProvider) ListModels(context.Context) ([]ai.ModelInfo, error) {
	return []ai.ModelInfo{{Name: "models/gemini-1.5-flash", CanGenerate: true}}, nil
}

func (p cannedProvider) Generate(context.Context, string, string) (string, error) {
	return p.reply, nil
}

const cannedReply = `{"bias":"neutral","score":48,"reason":"balanced sourcing","impact":"none"}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	feed := fixedFeed{
		model.CategoryPolitics: {{Title: "Assembly passes budget", Source: "Herald"}},
		model.CategoryEconomy:  {{Title: "Won slips", Source: "Daily"}},
	}
	analyzer := ai.New(ai.Options{
		Dial: func(context.Context, string) (ai.Provider, error) { return cannedProvider{reply: cannedReply}, nil },
	})
	p := dashboard.New(feed, analyzer, []string{"Politics Forum", "Domestic Stocks"}, 3)
	reg := session.NewRegistry(session.Options{Seed: []model.RankEntry{{Author: "master", Score: 150}}})
	srv := httptest.NewServer(New(p, reg, "sid"))
	t.Cleanup(srv.Close)
	return srv
}

type visitor struct {
	t      *testing.T
	base   string
	client *http.Client
	cookie *http.Cookie
}

func newVisitor(t *testing.T, base string) *visitor {
	return &visitor{t: t, base: base, client: &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}}
}

func (v *visitor) do(req *http.Request) (*http.Response, string) {
	v.t.Helper()
	if v.cookie != nil {
		req.AddCookie(v.cookie)
	}
	resp, err := v.client.Do(req)
	require.NoError(v.t, err)
	defer resp.Body.Close()
	for _, c := range resp.Cookies() {
		if c.Name == "sid" {
			v.cookie = c
		}
	}
	body, err := io.ReadAll(resp.Body)
	require.NoError(v.t, err)
	return resp, string(body)
}

func (v *visitor) get(path string) (*http.Response, string) {
	req, err := http.NewRequest(http.MethodGet, v.base+path, nil)
	require.NoError(v.t, err)
	return v.do(req)
}

func (v *visitor) post(path string, form url.Values) (*http.Response, string) {
	req, err := http.NewRequest(http.MethodPost, v.base+path, strings.NewReader(form.Encode()))
	require.NoError(v.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return v.do(req)
}

func TestIndexIssuesSessionCookie(t *testing.T) {
	srv := newTestServer(t)
	v := newVisitor(t, srv.URL)

	resp, body := v.get("/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, v.cookie)
	assert.True(t, v.cookie.HttpOnly)
	assert.Contains(t, body, "Assembly passes budget")
	assert.Contains(t, body, "master")

	first := v.cookie.Value
	resp, _ = v.get("/")
	assert.Empty(t, resp.Cookies(), "known sessions keep their cookie")
	assert.Equal(t, first, v.cookie.Value)
}

func TestAnalyzeWithoutCredentialFlashes(t *testing.T) {
	srv := newTestServer(t)
	v := newVisitor(t, srv.URL)
	v.get("/")

	resp, _ := v.post("/analyze", url.Values{"cat": {"politics"}, "idx": {"0"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/?cat=politics", resp.Header.Get("Location"))

	_, body := v.get("/?cat=politics")
	assert.Contains(t, body, dashboard.ErrMissingCredential.Error())

	// flash is shown once
	_, body = v.get("/?cat=politics")
	assert.NotContains(t, body, dashboard.ErrMissingCredential.Error())
}

func TestAnalyzeAndDownloadReport(t *testing.T) {
	srv := newTestServer(t)
	v := newVisitor(t, srv.URL)

	resp, _ := v.get("/report.md")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	v.post("/credential", url.Values{"key": {"  secret  "}})
	resp, _ = v.post("/analyze", url.Values{"cat": {"politics"}, "idx": {"0"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	_, body := v.get("/?cat=politics")
	assert.Contains(t, body, "balanced sourcing")
	assert.Contains(t, body, "width:48%")

	resp, md := v.get("/report.md")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/markdown")
	assert.Contains(t, md, "Assembly passes budget")
}

func TestAnalyzeRejectsBadIndex(t *testing.T) {
	srv := newTestServer(t)
	v := newVisitor(t, srv.URL)
	resp, _ := v.post("/analyze", url.Values{"cat": {"politics"}, "idx": {"x"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPostCreditsAuthor(t *testing.T) {
	srv := newTestServer(t)
	v := newVisitor(t, srv.URL)

	resp, _ := v.post("/posts", url.Values{"author": {"reader"}, "body": {"good piece"}, "board": {"Domestic Stocks"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/?board=Domestic+Stocks", resp.Header.Get("Location"))

	_, body := v.get("/?board=Domestic+Stocks")
	assert.Contains(t, body, "good piece")
	assert.Contains(t, body, "reader")

	// empty bodies are dropped without a message
	v.post("/posts", url.Values{"author": {"reader"}, "body": {" "}, "board": {"Domestic Stocks"}})
	_, body = v.get("/?board=Domestic+Stocks")
	assert.NotContains(t, body, "class=\"flash\"")

	v.post("/posts", url.Values{"author": {"reader"}, "body": {"hi"}, "board": {"Nowhere"}})
	_, body = v.get("/")
	assert.Contains(t, body, dashboard.ErrUnknownBoard.Error())
}

func TestScrapNeedsAnalysis(t *testing.T) {
	srv := newTestServer(t)
	v := newVisitor(t, srv.URL)
	v.post("/scrap", nil)
	_, body := v.get("/")
	assert.Contains(t, body, dashboard.ErrNothingToScrap.Error())
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestFlashForAnalysisError(t *testing.T) {
	err := &ai.Error{Kind: ai.KindAuthFailure, Detail: "API key not valid"}
	assert.Equal(t, "Analysis failed (auth failure): API key not valid", flashFor(err))
}

func TestAnalyzeRejectsHeadlineThatLeftTheFeed(t *testing.T) {
	srv := newTestServer(t)
	v := newVisitor(t, srv.URL)
	v.post("/credential", url.Values{"key": {"secret"}})

	resp, _ := v.post("/analyze", url.Values{"cat": {"politics"}, "idx": {"0"}, "title": {"Old headline"}, "source": {"Herald"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, _ = v.get("/report.md")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_, body := v.get("/")
	assert.Contains(t, body, "reload and pick the article again")

	v.post("/analyze", url.Values{"cat": {"politics"}, "idx": {"0"}, "title": {"Assembly passes budget"}, "source": {"Herald"}})
	resp, _ = v.get("/report.md")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestIndexAcceptsCategoryLabel(t *testing.T) {
	srv := newTestServer(t)
	v := newVisitor(t, srv.URL)
	_, body := v.get("/?cat=" + url.QueryEscape("경제"))
	assert.Contains(t, body, "Won slips")
	assert.NotContains(t, body, "Assembly passes budget")
	assert.Contains(t, body, `name="title" value="Won slips"`)
}

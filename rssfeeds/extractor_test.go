package rssfeeds

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"temponews/report"
	"temponews/types"
)

const articlePage = `<!DOCTYPE html>
<html>
<head>
<title>A Long Story</title>
<meta name="author" content="Page Author">
</head>
<body>
<article>
<h1>A Long Story</h1>
<p>The first paragraph of the story carries enough words to satisfy a content
extractor that filters out boilerplate and navigation fragments from pages.</p>
<p>The second paragraph continues the account with further detail, quoting the
people involved and describing what happened next in the course of events.</p>
<p>The third paragraph wraps up the piece with background and a short outlook
on what observers expect to happen in the coming weeks and months ahead.</p>
</article>
</body>
</html>`

func servePage(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/story":
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprint(w, articlePage)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetchArticleContentMergesExtraction(t *testing.T) {
	server := servePage(t)

	cfg := testConfig(server.URL)
	f := NewFetcher(cfg, report.NewQuiet())

	article := types.NewArticle("A Long Story", server.URL+"/story")
	f.FetchArticleContent(context.Background(), article)

	require.NotEmpty(t, article.Content)
	assert.Contains(t, article.Content, "first paragraph")
	assert.NotContains(t, article.Content, "<p>")
}

func TestFetchArticleContentKeepsFeedAuthor(t *testing.T) {
	server := servePage(t)

	f := NewFetcher(testConfig(server.URL), report.NewQuiet())
	article := types.NewArticle("A Long Story", server.URL+"/story")
	article.Author = "Feed Author"

	f.FetchArticleContent(context.Background(), article)
	assert.Equal(t, "Feed Author", article.Author)
}

func TestFetchArticleContentFailureLeavesArticleIntact(t *testing.T) {
	server := servePage(t)

	f := NewFetcher(testConfig(server.URL), report.NewQuiet())
	article := types.NewArticle("Missing Page", server.URL+"/gone")
	article.Summary = "Feed summary survives."

	f.FetchArticleContent(context.Background(), article)
	assert.Empty(t, article.Content)
	assert.Equal(t, "Feed summary survives.", article.Summary)
}

func TestFetchArticlesWithFullContent(t *testing.T) {
	pageServer := servePage(t)
	feedServer := serveFeed(t,
		feedEntry("A Long Story", pageServer.URL+"/story", "", "", ""),
		feedEntry("Broken Link", pageServer.URL+"/gone", "", "", ""),
	)

	cfg := testConfig(feedServer.URL)
	cfg.FetchFullContent = true
	f := NewFetcher(cfg, report.NewQuiet())

	articles := f.FetchArticles(context.Background())
	require.Len(t, articles, 2)

	// First article got its body; the failed one is kept without content.
	assert.NotEmpty(t, articles[0].Content)
	assert.Empty(t, articles[1].Content)
}

func TestFetchArticlesSendsUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, articlePage)
	}))
	t.Cleanup(server.Close)

	cfg := testConfig(server.URL)
	cfg.UserAgent = "Custom Agent 2.0"
	f := NewFetcher(cfg, report.NewQuiet())

	article := types.NewArticle("A Long Story", server.URL+"/story")
	f.FetchArticleContent(context.Background(), article)
	assert.Equal(t, "Custom Agent 2.0", gotUA)
}

func TestHTMLToMarkdown(t *testing.T) {
	out, err := htmlToMarkdown("<h2>Head</h2><p>Body with <strong>bold</strong> text.</p>")
	require.NoError(t, err)
	assert.Contains(t, out, "Head")
	assert.Contains(t, out, "**bold**")
	assert.False(t, strings.Contains(out, "<p>"))
}

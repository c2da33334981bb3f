package rssfeeds

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"temponews/report"
	"temponews/types"
)

const feedTimeout = 30 * time.Second

// Fetcher retrieves articles from an RSS/Atom feed and optionally enriches
// them with full page content, one page at a time.
type Fetcher struct {
	config   types.FetchConfig
	reporter *report.Reporter
	client   *http.Client
	limiter  *rate.Limiter
}

// NewFetcher creates a fetcher for the given configuration
func NewFetcher(config types.FetchConfig, reporter *report.Reporter) *Fetcher {
	delay := config.RateLimitDelay
	if delay <= 0 {
		delay = types.DefaultRateLimitDelay
	}
	return &Fetcher{
		config:   config,
		reporter: reporter,
		client:   &http.Client{Timeout: feedTimeout},
		// Courtesy pacing toward the article server: one token, refilled
		// every delay. The first fetch is free, each one after waits.
		limiter: rate.NewLimiter(rate.Every(delay), 1),
	}
}

// FetchArticles retrieves the feed and returns parsed articles, enriched
// with full content when the configuration asks for it. A feed that cannot
// be fetched or parsed yields an empty slice, not an error; the pipeline
// degrades rather than aborting.
func (f *Fetcher) FetchArticles(ctx context.Context) []*types.Article {
	articles := f.fetchFeed(ctx)
	if len(articles) == 0 {
		return articles
	}

	if f.config.FetchFullContent {
		f.reporter.Info("Fetching full content for %d articles...", len(articles))
		for _, article := range articles {
			if err := f.limiter.Wait(ctx); err != nil {
				// Context cancelled; keep whatever we already have.
				return articles
			}
			f.FetchArticleContent(ctx, article)
		}
	}

	return articles
}

// fetchFeed retrieves and parses the configured feed URL
func (f *Fetcher) fetchFeed(ctx context.Context) []*types.Article {
	f.reporter.Info("Fetching RSS feed from: %s", f.config.FeedURL)

	parser := gofeed.NewParser()
	parser.UserAgent = f.config.UserAgent
	parser.Client = f.client

	feed, err := parser.ParseURLWithContext(f.config.FeedURL, ctx)
	if err != nil {
		f.reporter.Error("fetching RSS feed: %v", err)
		return nil
	}

	f.reporter.Success("Found %d articles in RSS feed", len(feed.Items))

	count := min(len(feed.Items), f.config.MaxArticles)
	articles := make([]*types.Article, 0, count)
	for _, item := range feed.Items[:count] {
		article, ok := f.parseEntry(item)
		if !ok {
			continue
		}
		articles = append(articles, article)
	}
	return articles
}

// parseEntry maps a feed item onto the article model. A malformed entry is
// skipped with a warning; it never aborts the whole fetch.
func (f *Fetcher) parseEntry(item *gofeed.Item) (*types.Article, bool) {
	if item.Title == "" || item.Link == "" {
		f.reporter.Warn("skipping feed entry with missing title or link")
		return nil, false
	}

	article := types.NewArticle(item.Title, item.Link)
	article.Published = parsePublished(item)

	if item.Author != nil {
		article.Author = item.Author.Name
	}

	if len(item.Categories) > 0 {
		article.Categories = make([]string, len(item.Categories))
		copy(article.Categories, item.Categories)
	}

	summary := item.Description
	if summary == "" {
		summary = item.Content
	}
	if summary != "" {
		article.Summary = strings.TrimSpace(stripHTML(summary))
	}

	return article, true
}

// parsePublished prefers the structured timestamps the parser already
// produced, then falls back to freeform parsing of the raw date string.
func parsePublished(item *gofeed.Item) *time.Time {
	if item.PublishedParsed != nil {
		return item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed
	}
	if item.Published != "" {
		if t, err := dateparse.ParseAny(item.Published); err == nil {
			return &t
		}
	}
	return nil
}

// stripHTML extracts the text content from an HTML fragment
func stripHTML(fragment string) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return b.String()
}

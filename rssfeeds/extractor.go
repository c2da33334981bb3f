package rssfeeds

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	readability "github.com/go-shiori/go-readability"

	"temponews/types"
)

// FetchArticleContent retrieves the article page and merges the extracted
// main content into the article. Fields already present from the feed are
// kept unless the page offers something the feed did not. Any failure
// leaves the article untouched; partial data beats no article at all.
func (f *Fetcher) FetchArticleContent(ctx context.Context, article *types.Article) {
	f.reporter.Dim("Fetching content for: %s", article.Title)

	if err := f.extractContent(ctx, article); err != nil {
		f.reporter.Warn("could not fetch content for %s: %v", article.URL, err)
	}
}

func (f *Fetcher) extractContent(ctx context.Context, article *types.Article) error {
	if article.URL == "" {
		return fmt.Errorf("article URL is empty")
	}

	pageURL, err := url.Parse(article.URL)
	if err != nil {
		return fmt.Errorf("invalid article URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, article.URL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	extracted, err := readability.FromReader(resp.Body, pageURL)
	if err != nil {
		return fmt.Errorf("readability extraction failed: %w", err)
	}

	if extracted.Content != "" {
		content, err := htmlToMarkdown(extracted.Content)
		if err == nil && content != "" {
			article.Content = content
		} else if text := strings.TrimSpace(extracted.TextContent); text != "" {
			article.Content = text
		}
	}

	// Use extracted metadata only where the feed gave us nothing
	if article.Author == "" && extracted.Byline != "" {
		article.Author = extracted.Byline
	}
	if article.Published == nil && extracted.PublishedTime != nil {
		article.Published = extracted.PublishedTime
	}

	return nil
}

var converter = newConverter()

func newConverter() *md.Converter {
	c := md.NewConverter("", true, nil)
	c.Use(plugin.GitHubFlavored())
	return c
}

// htmlToMarkdown converts extracted article HTML into markdown body text
func htmlToMarkdown(content string) (string, error) {
	markdown, err := converter.ConvertString(content)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(markdown), nil
}

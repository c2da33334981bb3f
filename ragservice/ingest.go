package ragservice

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// IngestStats summarizes a bulk ingestion pass
type IngestStats struct {
	Successful int
	Failed     int
	Skipped    int
}

// frontmatter is the header block written by the markdown writer
type frontmatter struct {
	Title      string   `yaml:"title"`
	URL        string   `yaml:"url"`
	Author     string   `yaml:"author"`
	Published  string   `yaml:"published"`
	Categories []string `yaml:"categories"`
	Slug       string   `yaml:"slug"`
}

// IngestFromMarkdownFiles re-ingests previously written documents by
// parsing their header blocks and posting each to the service. Missing
// header fields fall back to the filename. Per-file failures are counted,
// never fatal.
func (c *Connector) IngestFromMarkdownFiles(ctx context.Context, dir string) IngestStats {
	if !c.isConnected {
		return IngestStats{}
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		c.reporter.Warn("listing markdown files: %v", err)
		return IngestStats{}
	}
	c.reporter.Info("Found %d markdown files to process", len(paths))

	var stats IngestStats
	for _, path := range paths {
		if err := c.ingestMarkdownFile(ctx, path); err != nil {
			c.reporter.Warn("failed to ingest %s: %v", filepath.Base(path), err)
			stats.Failed++
			continue
		}
		c.reporter.Success("Ingested: %s", filepath.Base(path))
		stats.Successful++
	}

	c.reporter.Info("Markdown ingestion: %d successful, %d failed", stats.Successful, stats.Failed)
	return stats
}

func (c *Connector) ingestMarkdownFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	stem := strings.TrimSuffix(filepath.Base(path), ".md")
	fm, body := splitFrontmatter(string(data))

	payload := IngestPayload{
		Title:      fm.Title,
		Content:    body,
		URL:        fm.URL,
		Author:     fm.Author,
		Published:  fm.Published,
		Categories: fm.Categories,
		Slug:       fm.Slug,
	}
	if payload.Title == "" {
		payload.Title = stem
	}
	if payload.Slug == "" {
		payload.Slug = stem
	}

	return c.postPayload(ctx, payload)
}

func (c *Connector) postPayload(ctx context.Context, payload IngestPayload) error {
	return c.client.postJSON(ctx, "/ingest", payload, ingestTimeout)
}

// splitFrontmatter separates a document's header block from its body.
// Documents without a header yield an empty frontmatter and the whole
// text as body.
func splitFrontmatter(content string) (frontmatter, string) {
	var fm frontmatter
	if !strings.HasPrefix(content, "---") {
		return fm, content
	}

	parts := strings.SplitN(content, "---", 3)
	if len(parts) < 3 {
		return fm, content
	}

	// Best effort; a malformed header leaves the zero value.
	_ = yaml.Unmarshal([]byte(parts[1]), &fm)
	return fm, strings.TrimSpace(parts[2])
}

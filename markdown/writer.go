// Package markdown renders articles into markdown documents with a
// structured header block and maintains the on-disk dedupe ledger.
package markdown

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"temponews/report"
	"temponews/textnorm"
	"temponews/types"
)

// MetadataFileName is the ledger sidecar stored alongside the documents
const MetadataFileName = ".metadata.json"

var excessiveBlankLines = regexp.MustCompile(`\n{4,}`)

// Metadata is the persisted dedupe ledger: every URL ever written to this
// output directory, plus the time of the last update.
type Metadata struct {
	LastUpdated   string   `json:"last_updated"`
	ProcessedURLs []string `json:"processed_urls"`
}

// Stats summarizes one batch write
type Stats struct {
	Written int
	Skipped int
}

// Writer persists articles as markdown files, skipping URLs it has
// already written in a previous run.
type Writer struct {
	outputDir    string
	metadataPath string
	reporter     *report.Reporter
	processed    map[string]bool
}

// NewWriter creates the output directory if needed and loads the ledger.
// A missing or unreadable ledger is treated as empty, never as an error.
func NewWriter(outputDir string, reporter *report.Reporter) (*Writer, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	w := &Writer{
		outputDir:    outputDir,
		metadataPath: filepath.Join(outputDir, MetadataFileName),
		reporter:     reporter,
		processed:    make(map[string]bool),
	}
	w.loadLedger()
	return w, nil
}

func (w *Writer) loadLedger() {
	data, err := os.ReadFile(w.metadataPath)
	if err != nil {
		if !os.IsNotExist(err) {
			w.reporter.Warn("could not load metadata: %v", err)
		}
		return
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		w.reporter.Warn("could not parse metadata: %v", err)
		return
	}
	for _, url := range meta.ProcessedURLs {
		w.processed[url] = true
	}
}

// saveLedger persists the union of the previous ledger and the newly
// written URLs. The set only ever grows.
func (w *Writer) saveLedger(newURLs []string) {
	for _, url := range newURLs {
		w.processed[url] = true
	}

	urls := make([]string, 0, len(w.processed))
	for url := range w.processed {
		urls = append(urls, url)
	}

	meta := Metadata{
		LastUpdated:   time.Now().Format(time.RFC3339),
		ProcessedURLs: urls,
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		w.reporter.Warn("could not encode metadata: %v", err)
		return
	}
	if err := os.WriteFile(w.metadataPath, data, 0o644); err != nil {
		w.reporter.Warn("could not save metadata: %v", err)
	}
}

// IsProcessed reports whether the article's URL is already in the ledger
func (w *Writer) IsProcessed(article *types.Article) bool {
	return w.processed[article.URL]
}

// WriteArticles writes each new article to disk, in input order, then
// persists the ledger once for the whole batch. Already-ledgered URLs are
// counted and skipped. Returns the paths actually written.
func (w *Writer) WriteArticles(articles []*types.Article) ([]string, Stats) {
	var written []string
	var newURLs []string
	var stats Stats

	// slug -> URL of the article that claimed it in this batch
	claimed := make(map[string]string)

	for _, article := range articles {
		if w.IsProcessed(article) {
			stats.Skipped++
			w.reporter.Dim("Skipping (already processed): %s", article.Title)
			continue
		}

		path, err := w.writeArticle(article, claimed)
		if err != nil {
			w.reporter.Error("writing article %q: %v", article.Title, err)
			continue
		}
		written = append(written, path)
		newURLs = append(newURLs, article.URL)
	}

	if len(newURLs) > 0 {
		w.saveLedger(newURLs)
	}

	stats.Written = len(written)
	w.reporter.Info("")
	w.reporter.Info("Summary:")
	w.reporter.Info("  Written: %d articles", stats.Written)
	w.reporter.Info("  Skipped: %d articles (already processed)", stats.Skipped)
	return written, stats
}

// writeArticle renders and persists a single article. Slug collisions with
// a different URL, in this batch or on disk, get a short hash suffix so no
// document is overwritten silently.
func (w *Writer) writeArticle(article *types.Article, claimed map[string]string) (string, error) {
	slug := article.GenerateSlug()

	if owner, taken := claimed[slug]; taken && owner != article.URL {
		slug = w.disambiguate(slug, article)
	} else if _, err := os.Stat(filepath.Join(w.outputDir, slug+".md")); err == nil {
		// A file from another article already holds this name.
		slug = w.disambiguate(slug, article)
	}
	claimed[slug] = article.URL

	path := filepath.Join(w.outputDir, slug+".md")
	content := renderArticle(article, slug)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	w.reporter.Success("Saved: %s", filepath.Base(path))
	return path, nil
}

func (w *Writer) disambiguate(slug string, article *types.Article) string {
	suffixed := slug + "-" + types.ShortHash(article.URL)[:8]
	w.reporter.Warn("slug collision for %q; writing as %s.md", slug, suffixed)
	return suffixed
}

// renderArticle produces the document text: a header block followed by the
// markdown body. All free text passes through the normalizer; header values
// are additionally quote-escaped and newline-collapsed.
func renderArticle(article *types.Article, slug string) string {
	var lines []string
	header := func(v string) string {
		return textnorm.EscapeHeaderValue(textnorm.Normalize(v))
	}

	lines = append(lines, "---")
	lines = append(lines, fmt.Sprintf("title: \"%s\"", header(article.Title)))
	lines = append(lines, fmt.Sprintf("url: %s", article.URL))
	if article.Author != "" {
		lines = append(lines, fmt.Sprintf("author: \"%s\"", header(article.Author)))
	}
	if article.Published != nil {
		lines = append(lines, fmt.Sprintf("published: %s", article.Published.Format(time.RFC3339)))
		lines = append(lines, fmt.Sprintf("date: %s", article.Published.Format("2006-01-02")))
	}
	if len(article.Categories) > 0 {
		lines = append(lines, "categories:")
		for _, category := range article.Categories {
			lines = append(lines, fmt.Sprintf("  - \"%s\"", header(category)))
		}
	}
	lines = append(lines, fmt.Sprintf("slug: %s", slug))
	lines = append(lines, "---", "")

	lines = append(lines, fmt.Sprintf("# %s", textnorm.Normalize(article.Title)), "")

	if article.Author != "" || article.Published != nil {
		var parts []string
		if article.Author != "" {
			parts = append(parts, fmt.Sprintf("**By:** %s", textnorm.Normalize(article.Author)))
		}
		if article.Published != nil {
			parts = append(parts, fmt.Sprintf("**Published:** %s", article.Published.Format("January 02, 2006")))
		}
		lines = append(lines, strings.Join(parts, " | "), "")
	}

	if len(article.Categories) > 0 {
		tags := make([]string, len(article.Categories))
		for i, category := range article.Categories {
			tags[i] = fmt.Sprintf("`%s`", textnorm.Normalize(category))
		}
		lines = append(lines, fmt.Sprintf("**Categories:** %s", strings.Join(tags, " ")), "")
	}

	lines = append(lines, fmt.Sprintf("**Source:** [%s](%s)", article.URL, article.URL), "")
	lines = append(lines, "---", "")

	if article.Summary != "" {
		lines = append(lines, "## Summary", "")
		lines = append(lines, textnorm.Normalize(article.Summary), "")
	}

	if article.Content != "" {
		lines = append(lines, "## Article Content", "")
		lines = append(lines, cleanContent(textnorm.Normalize(article.Content)))
	} else {
		lines = append(lines, "*Full article content not available. Please visit the source URL above.*")
	}

	return strings.Join(lines, "\n")
}

// cleanContent tidies body text: trailing whitespace stripped per line,
// runs of blank lines collapsed.
func cleanContent(content string) string {
	content = excessiveBlankLines.ReplaceAllString(content, "\n\n\n")
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

package types

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var (
	nonSlugChars = regexp.MustCompile(`[^\w\s-]`)
	slugRuns     = regexp.MustCompile(`[-\s]+`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// MaxSlugLength bounds generated slugs to keep filenames manageable.
const MaxSlugLength = 100

// Article represents a single news article with metadata and optional full content
type Article struct {
	Title      string     `json:"title"`
	URL        string     `json:"url"`
	Author     string     `json:"author,omitempty"`
	Published  *time.Time `json:"published,omitempty"`
	Summary    string     `json:"summary,omitempty"`
	Content    string     `json:"content,omitempty"`
	Categories []string   `json:"categories,omitempty"`
	Slug       string     `json:"slug,omitempty"`
}

// NewArticle constructs an article with a cleaned title
func NewArticle(title, url string) *Article {
	return &Article{
		Title: CleanTitle(title),
		URL:   url,
	}
}

// CleanTitle collapses whitespace runs and strips surrounding space from a title.
// Feed titles sometimes carry embedded newlines.
func CleanTitle(title string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(title, " "))
}

// GenerateSlug returns the article's slug, deriving one from the title when unset.
// Derivation: lowercase, drop everything outside word/space/hyphen, collapse
// space and hyphen runs to a single hyphen, trim edge hyphens, cap the length.
func (a *Article) GenerateSlug() string {
	if a.Slug != "" {
		return a.Slug
	}

	slug := strings.ToLower(a.Title)
	slug = nonSlugChars.ReplaceAllString(slug, "")
	slug = slugRuns.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > MaxSlugLength {
		slug = slug[:MaxSlugLength]
	}
	return slug
}

// FilePath returns the markdown file path for this article under baseDir
func (a *Article) FilePath(baseDir string) string {
	return filepath.Join(baseDir, a.GenerateSlug()+".md")
}

// ShortHash creates a short, stable ID by hashing the provided string input
func ShortHash(input string) string {
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])[:16]
}

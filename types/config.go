package types

import "time"

// Default configuration values
const (
	DefaultFeedURL        = "https://rss.tempo.co/"
	DefaultOutputDir      = "articles"
	DefaultMaxArticles    = 50
	DefaultUserAgent      = "Tempo News Fetcher 1.0"
	DefaultRateLimitDelay = time.Second
	DefaultRAGAppName     = "com.github.openmined.local-rag"
)

// FetchConfig holds process-wide settings for a fetch run.
// It is built once at startup and never mutated afterwards.
type FetchConfig struct {
	FeedURL           string
	OutputDir         string
	MaxArticles       int
	UserAgent         string
	RateLimitDelay    time.Duration
	FetchFullContent  bool
	RAGAppName        string
	SyftboxConfigPath string
}

// NewFetchConfig returns a FetchConfig populated with defaults
func NewFetchConfig() FetchConfig {
	return FetchConfig{
		FeedURL:          DefaultFeedURL,
		OutputDir:        DefaultOutputDir,
		MaxArticles:      DefaultMaxArticles,
		UserAgent:        DefaultUserAgent,
		RateLimitDelay:   DefaultRateLimitDelay,
		FetchFullContent: true,
		RAGAppName:       DefaultRAGAppName,
	}
}

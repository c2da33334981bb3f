package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"temponews/orchestrator"
	"temponews/report"
	"temponews/rssfeeds"
	"temponews/types"
)

func newFetchCmd() *cobra.Command {
	var (
		feedURL       string
		outputDir     string
		maxArticles   int
		noContent     bool
		rateLimit     float64
		userAgent     string
		ragAppName    string
		syftboxConfig string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch news articles from the RSS feed and save as markdown files",
		RunE: func(cmd *cobra.Command, args []string) error {
			reporter := report.New()

			config := types.NewFetchConfig()
			config.FeedURL = rssfeeds.ResolveFeedURL(feedURL)
			config.OutputDir = outputDir
			config.MaxArticles = maxArticles
			config.FetchFullContent = !noContent
			config.RateLimitDelay = time.Duration(rateLimit * float64(time.Second))
			config.UserAgent = userAgent
			config.RAGAppName = ragAppName
			config.SyftboxConfigPath = syftboxConfig

			reporter.Title("Tempo News Fetcher")
			reporter.Info("RSS URL: %s", config.FeedURL)
			reporter.Info("Output Directory: %s", config.OutputDir)
			reporter.Info("Max Articles: %d", config.MaxArticles)
			reporter.Info("Fetch Full Content: %v", config.FetchFullContent)
			reporter.Info("RAG App Name: %s", config.RAGAppName)
			reporter.Info("")

			pipeline := orchestrator.New(config, reporter)
			err := pipeline.Run(cmd.Context())
			if cmd.Context().Err() != nil {
				reporter.Warn("Operation cancelled by user.")
				return nil
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&feedURL, "url", GetEnvOrDefault("TEMPONEWS_FEED_URL", types.DefaultFeedURL), "RSS feed URL or preset name to fetch from")
	flags.StringVar(&outputDir, "output-dir", GetEnvOrDefault("TEMPONEWS_OUTPUT_DIR", types.DefaultOutputDir), "output directory for markdown files")
	flags.IntVar(&maxArticles, "max-articles", types.DefaultMaxArticles, "maximum number of articles to fetch")
	flags.BoolVar(&noContent, "no-content", false, "skip fetching full article content")
	flags.Float64Var(&rateLimit, "rate-limit", 1.0, "delay between requests in seconds")
	flags.StringVar(&userAgent, "user-agent", types.DefaultUserAgent, "user agent string for requests")
	flags.StringVar(&ragAppName, "rag-app-name", GetEnvOrDefault("TEMPONEWS_RAG_APP", types.DefaultRAGAppName), "name of the RAG app in SyftBox")
	flags.StringVar(&syftboxConfig, "syftbox-config", os.Getenv("SYFTBOX_CONFIG_PATH"), "path to SyftBox config file")
	return cmd
}

package cli

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"temponews/report"
	"temponews/types"
)

const recentFileCount = 10

func newStatsCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show statistics about fetched articles",
		RunE: func(cmd *cobra.Command, args []string) error {
			reporter := report.New()

			absDir, err := filepath.Abs(outputDir)
			if err != nil {
				return err
			}
			reporter.Title("Article Statistics")
			reporter.Info("Directory: %s", absDir)
			reporter.Info("")

			paths, err := filepath.Glob(filepath.Join(outputDir, "*.md"))
			if err != nil {
				return err
			}
			reporter.Info("Total articles: %d", len(paths))
			if len(paths) == 0 {
				return nil
			}

			// Most recent first
			sort.Slice(paths, func(i, j int) bool {
				return modTime(paths[i]).After(modTime(paths[j]))
			})
			if len(paths) > recentFileCount {
				paths = paths[:recentFileCount]
			}

			reporter.Info("")
			reporter.Info("Recent articles:")
			for _, path := range paths {
				reporter.Info("  - %s", strings.TrimSuffix(filepath.Base(path), ".md"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outputDir, "output-dir", GetEnvOrDefault("TEMPONEWS_OUTPUT_DIR", types.DefaultOutputDir), "articles directory to examine")
	return cmd
}

func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// Package cli defines the temponews command surface.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// GetEnvOrDefault returns the value of an environment variable or a default value
func GetEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "temponews",
		Short:         "Fetch news articles from an RSS feed and save them as markdown",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newFetchCmd())
	root.AddCommand(newStatsCmd())
	return root
}

// Execute runs the CLI with the given context
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

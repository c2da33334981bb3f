// Package orchestrator wires the pipeline together: service discovery,
// feed retrieval, and document writing, in that order.
package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"

	"temponews/markdown"
	"temponews/ragservice"
	"temponews/report"
	"temponews/rssfeeds"
	"temponews/types"
)

// Pipeline executes a single fetch-and-write run
type Pipeline struct {
	config    types.FetchConfig
	reporter  *report.Reporter
	connector *ragservice.Connector
}

// New builds a pipeline for one run
func New(config types.FetchConfig, reporter *report.Reporter) *Pipeline {
	return &Pipeline{
		config:    config,
		reporter:  reporter,
		connector: ragservice.NewConnector(config, reporter),
	}
}

// Connector exposes the service connector, mainly for status display and
// for tests that tighten the discovery wait bound.
func (p *Pipeline) Connector() *ragservice.Connector {
	return p.connector
}

// Run executes one end-to-end cycle. The whole workflow is skipped,
// without error, when the indexing service cannot be detected: articles
// are only fetched to feed that service, not for standalone archival.
func (p *Pipeline) Run(ctx context.Context) error {
	if !p.connector.Setup(ctx) {
		p.reporter.Warn("RAG server not recognized or not running. Skipping news fetching workflow.")
		p.reporter.Dim("News articles will only be fetched when the RAG server is available.")
		return nil
	}
	p.reporter.Dim("Articles will be automatically indexed when saved")

	fetcher := rssfeeds.NewFetcher(p.config, p.reporter)
	articles := fetcher.FetchArticles(ctx)
	if len(articles) == 0 {
		p.reporter.Error("No articles found!")
		return nil
	}

	p.reporter.Info("")
	p.reporter.Info("Writing %d articles to markdown...", len(articles))
	writer, err := markdown.NewWriter(p.config.OutputDir, p.reporter)
	if err != nil {
		return fmt.Errorf("initialize writer: %w", err)
	}

	written, _ := writer.WriteArticles(articles)

	if p.connector.FolderRegistered() {
		p.reporter.Dim("New articles will be automatically indexed")
		if status := p.connector.IndexingStatus(ctx); status.QueueSize > 0 {
			p.reporter.Dim("Indexing queue size: %d", status.QueueSize)
		}
	} else {
		p.reporter.Warn("articles folder not registered - automatic indexing unavailable")
	}

	if len(written) > 0 {
		outputDir, _ := filepath.Abs(p.config.OutputDir)
		p.reporter.Success("Successfully processed articles!")
		p.reporter.Info("Articles saved to: %s", outputDir)
	} else {
		p.reporter.Info("No new articles to process.")
	}
	return nil
}

package ragservice

import (
	"context"
	"path/filepath"

	"temponews/report"
	"temponews/types"
)

// ServiceInfo is a read-only snapshot of the connector state
type ServiceInfo struct {
	URL              string `json:"url,omitempty"`
	Port             string `json:"port,omitempty"`
	PID              string `json:"pid,omitempty"`
	Available        bool   `json:"available"`
	Healthy          bool   `json:"healthy"`
	FolderRegistered bool   `json:"folder_registered"`
}

// Connector ties discovery and the HTTP client together for one run.
// Its state only moves forward: undetected, then detected, then the
// output folder registered. A failed step leaves the run in a degraded
// mode where documents are written but never indexed.
type Connector struct {
	config   types.FetchConfig
	detector *Detector
	reporter *report.Reporter

	client           *Client
	discovery        Discovery
	isConnected      bool
	folderRegistered bool
}

// NewConnector creates a connector for the configured RAG app
func NewConnector(config types.FetchConfig, reporter *report.Reporter) *Connector {
	return &Connector{
		config:   config,
		detector: NewDetector(config.SyftboxConfigPath, reporter),
		reporter: reporter,
	}
}

// Detector exposes the underlying detector, mainly so callers can tighten
// the wait bound.
func (c *Connector) Detector() *Detector {
	return c.detector
}

// Setup detects the RAG service and, when found, registers the output
// folder for automatic indexing. Returns whether the service is reachable.
func (c *Connector) Setup(ctx context.Context) bool {
	c.reporter.Info("Setting up RAG service connection...")

	c.discovery = c.detector.Detect(ctx, c.config.RAGAppName)
	if !c.discovery.Found {
		c.reporter.Warn("RAG service not available; articles will be saved without indexing")
		return false
	}

	c.client = NewClient(c.discovery.URL)
	c.isConnected = true
	c.reporter.Success("Connected to RAG service: %s", c.discovery.URL)

	if c.RegisterFolder(ctx) {
		c.reporter.Success("Articles folder registered for automatic indexing")
	}
	return true
}

// IsConnected reports whether the service was detected this run
func (c *Connector) IsConnected() bool {
	return c.isConnected
}

// FolderRegistered reports whether the output folder is watched
func (c *Connector) FolderRegistered() bool {
	return c.folderRegistered
}

// RegisterFolder registers the output directory with the service. If the
// folder is already watched no request is sent. Failures are logged and
// leave the connector unregistered; they never abort the run.
func (c *Connector) RegisterFolder(ctx context.Context) bool {
	if !c.isConnected {
		return false
	}

	folder, err := filepath.Abs(c.config.OutputDir)
	if err != nil {
		c.reporter.Warn("resolving articles folder: %v", err)
		return false
	}

	if c.isFolderRegistered(ctx, folder) {
		c.reporter.Dim("Articles folder already registered: %s", folder)
		c.folderRegistered = true
		return true
	}

	if err := c.client.AddFolder(ctx, folder); err != nil {
		c.reporter.Warn("failed to register folder: %v", err)
		return false
	}

	c.folderRegistered = true
	c.reporter.Success("Registered folder: %s", folder)
	return true
}

func (c *Connector) isFolderRegistered(ctx context.Context, folder string) bool {
	folders, err := c.client.WatchedFolders(ctx)
	if err != nil {
		c.reporter.Dim("could not check watched folders: %v", err)
		return false
	}
	for _, f := range folders {
		if f == folder {
			return true
		}
	}
	return false
}

// Stats returns the service statistics, or zero values when disconnected
func (c *Connector) Stats(ctx context.Context) StatsResponse {
	if !c.isConnected {
		return StatsResponse{}
	}
	return c.client.Stats(ctx)
}

// IndexingStatus returns the service's queue state, or a disconnected
// placeholder
func (c *Connector) IndexingStatus(ctx context.Context) IndexingStatus {
	if !c.isConnected {
		return IndexingStatus{Status: "disconnected"}
	}
	return c.client.CurrentIndexingStatus(ctx)
}

// ServiceInfo returns a snapshot of everything known about the service
func (c *Connector) ServiceInfo(ctx context.Context) ServiceInfo {
	info := ServiceInfo{
		URL:              c.discovery.URL,
		Port:             c.discovery.Port,
		PID:              c.discovery.PID,
		Available:        c.isConnected,
		FolderRegistered: c.folderRegistered,
	}
	if c.isConnected {
		info.Healthy = c.client.Health(ctx)
	}
	return info
}

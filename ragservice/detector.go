// Package ragservice discovers a locally running RAG indexing service
// through the SyftBox file handshake and talks to its HTTP API.
package ragservice

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"temponews/report"
)

const (
	// DefaultMaxWait bounds how long detection polls for the marker files
	DefaultMaxWait = 30 * time.Second

	pollInterval = time.Second
)

// Discovery is the result of one detection attempt: either the service
// was found with its address and process id, or the wait timed out.
type Discovery struct {
	Found bool
	URL   string
	Port  string
	PID   string
}

// syftboxConfig is the slice of the SyftBox config file we need
type syftboxConfig struct {
	DataDir string `json:"data_dir"`
}

// Detector locates the RAG service via the SyftBox workspace: the service
// writes app.port and app.pid marker files under its app data directory
// when it starts.
type Detector struct {
	configPath string
	maxWait    time.Duration
	reporter   *report.Reporter
}

// NewDetector creates a detector reading the SyftBox config at configPath.
// An empty path falls back to the per-user default location.
func NewDetector(configPath string, reporter *report.Reporter) *Detector {
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			configPath = filepath.Join(home, ".syftbox", "config.json")
		}
	}
	return &Detector{
		configPath: configPath,
		maxWait:    DefaultMaxWait,
		reporter:   reporter,
	}
}

// SetMaxWait overrides the detection wait bound
func (d *Detector) SetMaxWait(maxWait time.Duration) {
	d.maxWait = maxWait
}

// Detect polls for the service marker files until they appear or the wait
// bound elapses. It never returns an error: any failure, including a
// missing config file, reports as a non-detection.
func (d *Detector) Detect(ctx context.Context, appName string) Discovery {
	dataDir, err := d.loadDataDir()
	if err != nil {
		d.reporter.Warn("%v", err)
		return Discovery{}
	}

	appFolder := filepath.Join(dataDir, "apps", appName)
	portFile := filepath.Join(appFolder, "data", "app.port")
	pidFile := filepath.Join(appFolder, "data", "app.pid")

	d.reporter.Info("Looking for RAG service at: %s", appFolder)
	if _, err := os.Stat(appFolder); err != nil {
		d.reporter.Warn("RAG app directory not found: %s", appFolder)
		return Discovery{}
	}

	d.reporter.Info("Waiting for RAG service (max %s)...", d.maxWait)
	timeout := time.After(d.maxWait)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		if disc, ok := readMarkers(portFile, pidFile); ok {
			d.reporter.Success("RAG service detected at %s (pid %s)", disc.URL, disc.PID)
			return disc
		}
		select {
		case <-ctx.Done():
			return Discovery{}
		case <-timeout:
			d.reporter.Warn("RAG service not detected within %s", d.maxWait)
			return Discovery{}
		case <-ticker.C:
		}
	}
}

func (d *Detector) loadDataDir() (string, error) {
	data, err := os.ReadFile(d.configPath)
	if err != nil {
		return "", fmt.Errorf("SyftBox config not found at %s", d.configPath)
	}
	var cfg syftboxConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return "", fmt.Errorf("invalid SyftBox config %s: %w", d.configPath, err)
	}
	if cfg.DataDir == "" {
		return "", fmt.Errorf("SyftBox config %s has no data_dir", d.configPath)
	}
	return cfg.DataDir, nil
}

// readMarkers reads both marker files; both must be present and non-empty
func readMarkers(portFile, pidFile string) (Discovery, bool) {
	port, err := os.ReadFile(portFile)
	if err != nil {
		return Discovery{}, false
	}
	pid, err := os.ReadFile(pidFile)
	if err != nil {
		return Discovery{}, false
	}

	portStr := strings.TrimSpace(string(port))
	pidStr := strings.TrimSpace(string(pid))
	if portStr == "" || pidStr == "" {
		return Discovery{}, false
	}

	return Discovery{
		Found: true,
		URL:   "http://localhost:" + portStr,
		Port:  portStr,
		PID:   pidStr,
	}, true
}

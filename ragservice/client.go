package ragservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"temponews/types"
)

const (
	healthTimeout  = 5 * time.Second
	requestTimeout = 10 * time.Second
	ingestTimeout  = 30 * time.Second
)

// StatsResponse mirrors the service's /api/stats payload
type StatsResponse struct {
	TotalDocuments int `json:"total_documents"`
	WatchedFolders int `json:"watched_folders"`
}

// IndexingStatus mirrors the service's /api/indexing-status payload
type IndexingStatus struct {
	Status    string `json:"status"`
	QueueSize int    `json:"queue_size"`
}

// IngestPayload is the item document sent to POST /ingest
type IngestPayload struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	URL        string   `json:"url"`
	Author     string   `json:"author,omitempty"`
	Published  string   `json:"published,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Slug       string   `json:"slug"`
}

// Client is a thin HTTP client for the RAG service. Every call uses a
// short timeout and treats non-200 responses and transport errors as
// "service unavailable" rather than failures worth propagating.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the service at baseURL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: ingestTimeout},
	}
}

// Health reports whether the service answers its health endpoint
func (c *Client) Health(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	resp, err := c.get(ctx, "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Stats returns indexing statistics, or zero values when unavailable
func (c *Client) Stats(ctx context.Context) StatsResponse {
	var stats StatsResponse
	c.getJSON(ctx, "/api/stats", &stats)
	return stats
}

// CurrentIndexingStatus returns the indexing queue state. When the service
// cannot be reached the status reads "unknown" with an empty queue.
func (c *Client) CurrentIndexingStatus(ctx context.Context) IndexingStatus {
	status := IndexingStatus{Status: "unknown"}
	c.getJSON(ctx, "/api/indexing-status", &status)
	return status
}

// WatchedFolders lists the folders the service currently watches
func (c *Client) WatchedFolders(ctx context.Context) ([]string, error) {
	var payload struct {
		Folders []string `json:"folders"`
	}
	if err := c.getJSON(ctx, "/api/watched-folders", &payload); err != nil {
		return nil, err
	}
	return payload.Folders, nil
}

// AddFolder registers a folder for automatic indexing
func (c *Client) AddFolder(ctx context.Context, folderPath string) error {
	body := map[string]string{"folder_path": folderPath}
	return c.postJSON(ctx, "/api/add-folder", body, requestTimeout)
}

// Ingest pushes a single article document into the index
func (c *Client) Ingest(ctx context.Context, article *types.Article) error {
	payload := IngestPayload{
		Title:      article.Title,
		Content:    article.Content,
		URL:        article.URL,
		Author:     article.Author,
		Categories: article.Categories,
		Slug:       article.GenerateSlug(),
	}
	if payload.Content == "" {
		payload.Content = article.Summary
	}
	if article.Published != nil {
		payload.Published = article.Published.Format(time.RFC3339)
	}
	return c.postJSON(ctx, "/ingest", payload, ingestTimeout)
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return c.httpClient.Do(req)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) postJSON(ctx context.Context, path string, body any, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, path)
	}
	return nil
}

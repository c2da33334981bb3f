// Package indexstub is an in-memory stand-in for the RAG indexing service,
// implementing the HTTP surface the connector consumes. It backs local
// development (cmd/indexstub) and the connector tests.
package indexstub

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

// Stub holds the mutable state behind the stub endpoints
type Stub struct {
	mu        sync.Mutex
	folders   []string
	documents int
	queue     int
}

// NewRouter constructs a Gin engine with the indexing service routes
func NewRouter() (*gin.Engine, *Stub) {
	s := &Stub{}

	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	r.GET("/health", s.handleHealth)
	r.GET("/api/stats", s.handleStats)
	r.GET("/api/indexing-status", s.handleIndexingStatus)
	r.GET("/api/watched-folders", s.handleWatchedFolders)
	r.POST("/api/add-folder", s.handleAddFolder)
	r.POST("/ingest", s.handleIngest)
	return r, s
}

// Folders returns a copy of the currently watched folders
func (s *Stub) Folders() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.folders))
	copy(out, s.folders)
	return out
}

// DocumentCount returns how many documents have been ingested
func (s *Stub) DocumentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.documents
}

func (s *Stub) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Stub) handleStats(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{
		"total_documents": s.documents,
		"watched_folders": len(s.folders),
	})
}

func (s *Stub) handleIndexingStatus(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{
		"status":     "idle",
		"queue_size": s.queue,
	})
}

func (s *Stub) handleWatchedFolders(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	folders := s.folders
	if folders == nil {
		folders = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"folders": folders})
}

func (s *Stub) handleAddFolder(c *gin.Context) {
	var req struct {
		FolderPath string `json:"folder_path"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.FolderPath == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "folder_path is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.folders {
		if f == req.FolderPath {
			c.JSON(http.StatusOK, gin.H{"status": "already watched"})
			return
		}
	}
	s.folders = append(s.folders, req.FolderPath)
	c.JSON(http.StatusOK, gin.H{"status": "added"})
}

func (s *Stub) handleIngest(c *gin.Context) {
	var doc struct {
		Title string `json:"title"`
		URL   string `json:"url"`
	}
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document payload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents++
	c.JSON(http.StatusOK, gin.H{"status": "ingested"})
}

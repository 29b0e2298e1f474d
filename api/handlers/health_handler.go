package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/yt-archiver-go/internal/domain"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	repo    domain.HistoryRepository
	version string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(repo domain.HistoryRepository, version string) *HealthHandler {
	return &HealthHandler{
		repo:    repo,
		version: version,
	}
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	History struct {
		Enabled bool `json:"enabled"`
	} `json:"history"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	response := HealthResponse{
		Status:  "ok",
		Version: h.version,
	}
	response.History.Enabled = h.repo != nil

	c.JSON(http.StatusOK, response)
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "history repository not configured",
		})
		return
	}

	if _, err := h.repo.GetStats(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "history database unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

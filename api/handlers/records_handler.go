package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/yt-archiver-go/internal/domain"
	"go.uber.org/zap"
)

const defaultRecordLimit = 50

// RecordsHandler handles download record queries
type RecordsHandler struct {
	repo   domain.HistoryRepository
	logger *zap.Logger
}

// NewRecordsHandler creates a new records handler
func NewRecordsHandler(repo domain.HistoryRepository, logger *zap.Logger) *RecordsHandler {
	return &RecordsHandler{
		repo:   repo,
		logger: logger,
	}
}

// ListRecords handles GET /api/v1/records
func (h *RecordsHandler) ListRecords(c *gin.Context) {
	filters := make(map[string]interface{})

	if status := c.Query("status"); status != "" {
		filters["status"] = status
	}
	if channel := c.Query("channel"); channel != "" {
		filters["channel"] = channel
	}

	limit := defaultRecordLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	records, err := h.repo.FindRecent(limit, filters)
	if err != nil {
		h.logger.Error("Failed to list records", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, records)
}

// GetRecord handles GET /api/v1/records/:id
func (h *RecordsHandler) GetRecord(c *gin.Context) {
	id := c.Param("id")

	record, err := h.repo.FindByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// GetStats handles GET /api/v1/stats
func (h *RecordsHandler) GetStats(c *gin.Context) {
	stats, err := h.repo.GetStats()
	if err != nil {
		h.logger.Error("Failed to get stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/yt-archiver-go/api/handlers"
	"github.com/yourusername/yt-archiver-go/api/middleware"
	"github.com/yourusername/yt-archiver-go/internal/domain"
	"github.com/yourusername/yt-archiver-go/pkg/logger"
)

// SetupRouter sets up the read-only status HTTP router
func SetupRouter(
	repo domain.HistoryRepository,
	logAdapter *logger.LoggerAdapter,
	version string,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(middleware.LoggerWithAdapter(logAdapter))
	router.Use(middleware.RecoveryWithAdapter(logAdapter))

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(repo, version)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		recordsHandler := handlers.NewRecordsHandler(repo, logAdapter.Web())
		records := v1.Group("/records")
		{
			records.GET("", recordsHandler.ListRecords)
			records.GET("/:id", recordsHandler.GetRecord)
		}
		v1.GET("/stats", recordsHandler.GetStats)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return router
}

package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fin-letter/api/handlers"
	"fin-letter/api/middleware"
	"fin-letter/processor"
)

func New(p *processor.Processor) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestTrace())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// v1 routes
	api := r.Group("/api/v1")
	{
		api.GET("/summaries", handlers.ListSummariesHandler(p))
	}

	return r
}

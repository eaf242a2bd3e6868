package router

import (
	"net/http"

	"github.com/cuongbtq/news-review/internal/api/handler"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "news-review-service",
		})
	})

	reviewHandler := handler.NewReviewHandler(deps)

	// POST /review - start an asynchronous review for a date
	r.POST("/review", reviewHandler.StartReview)

	// GET /review/:job_id - poll job status and results
	r.GET("/review/:job_id", reviewHandler.GetReview)

	return r
}

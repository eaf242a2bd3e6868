package handler

import (
	"log/slog"
	"net/http"

	"github.com/cuongbtq/news-review/internal/api/dto"
	"github.com/cuongbtq/news-review/internal/review/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StartReview handles POST /review
// Registers a queued job and schedules the background review. Date format
// validation happens inside the background job, not before acknowledging.
func (h *ReviewHandler) StartReview(c *gin.Context) {
	var req dto.StartReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	jobID := uuid.New().String()
	h.registry.Create(jobID)

	if err := h.runner.Submit(jobID, req.Date); err != nil {
		h.logger.Error("Failed to schedule review job",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()),
		)
		h.registry.SetFailed(jobID, err.Error())
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Failed to schedule review",
		})
		return
	}

	h.logger.Info("Review job accepted",
		slog.String("job_id", jobID),
		slog.String("date", req.Date),
	)

	c.Header("Location", "/review/"+jobID)
	c.JSON(http.StatusAccepted, dto.StartReviewResponse{
		JobID:  jobID,
		Status: domain.JobStatusQueued,
	})
}

// GetReview handles GET /review/:job_id
// Returns the current registry entry. Unknown ids answer 200 with a
// not_found status rather than 404.
func (h *ReviewHandler) GetReview(c *gin.Context) {
	jobID := c.Param("job_id")

	job, ok := h.registry.Get(jobID)
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"status": domain.JobStatusNotFound,
		})
		return
	}

	c.JSON(http.StatusOK, job)
}

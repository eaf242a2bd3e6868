package handler

import (
	"log/slog"

	"github.com/cuongbtq/news-review/internal/review"
)

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger   *slog.Logger
	Registry *review.Registry
	Runner   *review.Runner
}

// ReviewHandler handles review-related HTTP requests
type ReviewHandler struct {
	logger   *slog.Logger
	registry *review.Registry
	runner   *review.Runner
}

// NewReviewHandler creates a new ReviewHandler instance
func NewReviewHandler(deps *Dependencies) *ReviewHandler {
	return &ReviewHandler{
		logger:   deps.Logger,
		registry: deps.Registry,
		runner:   deps.Runner,
	}
}

package dto

// StartReviewRequest is the body of POST /review.
type StartReviewRequest struct {
	Date string `json:"date" binding:"required"` // "YYYY-MM-DD"
}

// StartReviewResponse acknowledges an accepted review job.
type StartReviewResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

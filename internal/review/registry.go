package review

import (
	"sync"

	"github.com/cuongbtq/news-review/internal/review/domain"
)

// Registry is the process-lifetime job store. Entries are never evicted.
// Each job is written by the single runner goroutine that owns it and read
// by any number of concurrent pollers; reads return value copies.
type Registry struct {
	mu   sync.RWMutex
	jobs map[string]domain.Job
}

// NewRegistry creates an empty job registry.
func NewRegistry() *Registry {
	return &Registry{
		jobs: make(map[string]domain.Job),
	}
}

// Create registers a fresh queued job under id.
func (r *Registry) Create(id string) domain.Job {
	r.mu.Lock()
	defer r.mu.Unlock()

	job := domain.Job{
		ID:     id,
		Status: domain.JobStatusQueued,
	}
	r.jobs[id] = job
	return job
}

// Get returns a copy of the job entry for id.
func (r *Registry) Get(id string) (domain.Job, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[id]
	return job, ok
}

// SetRunning moves the job into the running state with zero progress.
func (r *Registry) SetRunning(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.jobs[id] = domain.Job{
		ID:     id,
		Status: domain.JobStatusRunning,
	}
}

// SetProgress records percentage completion for a running job.
func (r *Registry) SetProgress(id string, progress int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return
	}
	job.Progress = progress
	r.jobs[id] = job
}

// SetDone records successful completion with the accumulated flagged results.
func (r *Registry) SetDone(id string, results []domain.ReviewResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.jobs[id] = domain.Job{
		ID:       id,
		Status:   domain.JobStatusDone,
		Progress: 100,
		Count:    len(results),
		Results:  results,
	}
}

// SetFailed replaces the entry with a failed-state snapshot. In-progress
// progress and results are discarded.
func (r *Registry) SetFailed(id string, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.jobs[id] = domain.Job{
		ID:     id,
		Status: domain.JobStatusFailed,
		Err:    message,
	}
}

package domain

import "encoding/json"

// Job status constants
const (
	JobStatusQueued   = "queued"
	JobStatusRunning  = "running"
	JobStatusDone     = "done"
	JobStatusFailed   = "failed"
	JobStatusNotFound = "not_found"
)

// ReviewResult records one article that triggered at least one compliance flag.
type ReviewResult struct {
	URL           string              `json:"url"`
	Title         string              `json:"title"`
	PublishedDate string              `json:"published_date"`
	Violations    []string            `json:"violations"`
	Evidence      map[string][]string `json:"evidence"`
}

// Job is one asynchronous review run, tracked by an opaque identifier.
// Which fields are meaningful depends on Status; MarshalJSON emits only those.
type Job struct {
	ID       string
	Status   string
	Progress int
	Count    int
	Results  []ReviewResult
	Err      string
}

// MarshalJSON serializes the state-dependent shape of a registry entry:
// queued/running carry progress, done carries count and result, failed
// carries only the error message.
func (j Job) MarshalJSON() ([]byte, error) {
	switch j.Status {
	case JobStatusDone:
		results := j.Results
		if results == nil {
			results = []ReviewResult{}
		}
		return json.Marshal(struct {
			Status   string         `json:"status"`
			Progress int            `json:"progress"`
			Count    int            `json:"count"`
			Result   []ReviewResult `json:"result"`
		}{j.Status, j.Progress, j.Count, results})
	case JobStatusFailed:
		return json.Marshal(struct {
			Status string `json:"status"`
			Error  string `json:"error"`
		}{j.Status, j.Err})
	default:
		return json.Marshal(struct {
			Status   string `json:"status"`
			Progress int    `json:"progress"`
		}{j.Status, j.Progress})
	}
}

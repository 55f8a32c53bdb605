package domain

import (
	"time"

	"github.com/google/uuid"
)

// BatchJob is the outcome of parsing one document in a batch run.
type BatchJob struct {
	ID         uuid.UUID        `json:"id"`
	Ref        string           `json:"ref"`
	Status     JobStatus        `json:"status"`
	Attempts   int              `json:"attempts"`
	StartedAt  time.Time        `json:"started_at"`
	DurationMS int64            `json:"duration_ms"`
	Error      string           `json:"error,omitempty"`
	OutputPath string           `json:"output_path,omitempty"`
	Summary    *DocumentSummary `json:"summary,omitempty"`
}

// BatchSummary aggregates the jobs of a batch run.
type BatchSummary struct {
	Total           int     `json:"total"`
	Completed       int     `json:"completed"`
	Failed          int     `json:"failed"`
	SuccessRate     float64 `json:"success_rate"`
	TotalDurationMS int64   `json:"total_duration_ms"`
}

// BatchReport is the persisted record of a batch run.
type BatchReport struct {
	ID         uuid.UUID    `json:"id"`
	Root       string       `json:"root,omitempty"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Jobs       []BatchJob   `json:"jobs"`
	Summary    BatchSummary `json:"summary"`
}

// FailedRefs returns the references of failed jobs in job order.
func (r *BatchReport) FailedRefs() []string {
	var refs []string
	for _, j := range r.Jobs {
		if j.Status == JobStatusFailed {
			refs = append(refs, j.Ref)
		}
	}
	return refs
}

// Summarize recomputes r.Summary from r.Jobs.
func (r *BatchReport) Summarize() {
	s := BatchSummary{Total: len(r.Jobs)}
	for _, j := range r.Jobs {
		switch j.Status {
		case JobStatusCompleted:
			s.Completed++
		case JobStatusFailed:
			s.Failed++
		}
		s.TotalDurationMS += j.DurationMS
	}
	if s.Total > 0 {
		s.SuccessRate = float64(s.Completed) / float64(s.Total) * 100
	}
	r.Summary = s
}

package model

import "time"

// JobStatus represents the current state of an extraction job.
type JobStatus string

const (
	JobStatusQueued   JobStatus = "queued"
	JobStatusRunning  JobStatus = "running"
	JobStatusComplete JobStatus = "complete"
	JobStatusFailed   JobStatus = "failed"
)

// Job is one unit of extraction work: parse a single raw-text file into a
// Statement of the given type. Jobs are persisted so the worker can resume
// after a crash and so retries carry an attempt count.
type Job struct {
	ID            string        `json:"id"`
	StatementType StatementType `json:"statement_type"`
	InputPath     string        `json:"input_path"`
	Status        JobStatus     `json:"status"`
	Attempts      int           `json:"attempts"`
	Error         string        `json:"error,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// StatementRecord is a persisted parse result tied to the job that
// produced it.
type StatementRecord struct {
	ID        string     `json:"id"`
	JobID     string     `json:"job_id"`
	Statement *Statement `json:"statement"`
	CreatedAt time.Time  `json:"created_at"`
}

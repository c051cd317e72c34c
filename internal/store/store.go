package store

import (
	"context"

	"github.com/sells-group/statement-cli/internal/model"
)

// JobFilter specifies criteria for listing jobs.
type JobFilter struct {
	Status        model.JobStatus     `json:"status,omitempty"`
	StatementType model.StatementType `json:"statement_type,omitempty"`
	Limit         int                 `json:"limit,omitempty"`
}

// Store defines the persistence interface for extraction jobs and their
// parsed statements.
type Store interface {
	// Jobs
	EnqueueJob(ctx context.Context, t model.StatementType, inputPath string) (*model.Job, error)
	ClaimJobs(ctx context.Context, limit int) ([]model.Job, error)
	CompleteJob(ctx context.Context, jobID string) error
	FailJob(ctx context.Context, jobID string, attempts int, errMsg string, terminal bool) error
	GetJob(ctx context.Context, jobID string) (*model.Job, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]model.Job, error)

	// Statements
	SaveStatement(ctx context.Context, jobID string, stmt *model.Statement) (*model.StatementRecord, error)
	ListStatements(ctx context.Context, t model.StatementType) ([]model.StatementRecord, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

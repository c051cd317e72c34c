package store

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/statement-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock satisfies it
// in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool (tests).
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS jobs (
	id             TEXT PRIMARY KEY,
	statement_type TEXT NOT NULL,
	input_path     TEXT NOT NULL,
	status         TEXT NOT NULL DEFAULT 'queued',
	attempts       INTEGER NOT NULL DEFAULT 0,
	error          TEXT,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS statements (
	id             TEXT PRIMARY KEY,
	job_id         TEXT NOT NULL REFERENCES jobs(id),
	statement_type TEXT NOT NULL,
	payload        JSONB NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status);
CREATE INDEX IF NOT EXISTS idx_jobs_type ON jobs(statement_type);
CREATE INDEX IF NOT EXISTS idx_statements_type ON statements(statement_type);
CREATE INDEX IF NOT EXISTS idx_statements_job_id ON statements(job_id);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) EnqueueJob(ctx context.Context, t model.StatementType, inputPath string) (*model.Job, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO jobs (id, statement_type, input_path, status, attempts, created_at, updated_at) VALUES ($1, $2, $3, $4, 0, $5, $6)`,
		id, string(t), inputPath, string(model.JobStatusQueued), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert job")
	}

	return &model.Job{
		ID:            id,
		StatementType: t,
		InputPath:     inputPath,
		Status:        model.JobStatusQueued,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// ClaimJobs atomically moves up to limit queued jobs to running. SKIP
// LOCKED keeps concurrent workers from claiming the same job.
func (s *PostgresStore) ClaimJobs(ctx context.Context, limit int) ([]model.Job, error) {
	rows, err := s.pool.Query(ctx,
		`UPDATE jobs SET status = $1, updated_at = now()
		 WHERE id IN (
			SELECT id FROM jobs WHERE status = $2 ORDER BY created_at LIMIT $3 FOR UPDATE SKIP LOCKED
		 )
		 RETURNING id, statement_type, input_path, status, attempts, error, created_at, updated_at`,
		string(model.JobStatusRunning), string(model.JobStatusQueued), limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: claim jobs")
	}
	defer rows.Close()
	return scanPgJobs(rows)
}

func (s *PostgresStore) CompleteJob(ctx context.Context, jobID string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE jobs SET status = $1, error = NULL, updated_at = now() WHERE id = $2`,
		string(model.JobStatusComplete), jobID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: complete job %s", jobID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("postgres: job %s not found", jobID)
	}
	return nil
}

func (s *PostgresStore) FailJob(ctx context.Context, jobID string, attempts int, errMsg string, terminal bool) error {
	status := model.JobStatusQueued
	if terminal {
		status = model.JobStatusFailed
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE jobs SET status = $1, attempts = $2, error = $3, updated_at = now() WHERE id = $4`,
		string(status), attempts, errMsg, jobID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: fail job %s", jobID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("postgres: job %s not found", jobID)
	}
	return nil
}

func (s *PostgresStore) GetJob(ctx context.Context, jobID string) (*model.Job, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, statement_type, input_path, status, attempts, error, created_at, updated_at FROM jobs WHERE id = $1`,
		jobID,
	)
	return scanPgJob(row)
}

func (s *PostgresStore) ListJobs(ctx context.Context, filter JobFilter) ([]model.Job, error) {
	query := `SELECT id, statement_type, input_path, status, attempts, error, created_at, updated_at FROM jobs WHERE 1=1`
	var args []any

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += ` AND status = $1`
	}
	if filter.StatementType != "" {
		args = append(args, string(filter.StatementType))
		query += ` AND statement_type = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list jobs")
	}
	defer rows.Close()
	return scanPgJobs(rows)
}

func (s *PostgresStore) SaveStatement(ctx context.Context, jobID string, stmt *model.Statement) (*model.StatementRecord, error) {
	payload, err := json.Marshal(stmt)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal statement")
	}

	id := uuid.New().String()
	now := time.Now().UTC()
	_, err = s.pool.Exec(ctx,
		`INSERT INTO statements (id, job_id, statement_type, payload, created_at) VALUES ($1, $2, $3, $4, $5)`,
		id, jobID, string(stmt.StatementType), payload, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert statement")
	}

	return &model.StatementRecord{ID: id, JobID: jobID, Statement: stmt, CreatedAt: now}, nil
}

func (s *PostgresStore) ListStatements(ctx context.Context, t model.StatementType) ([]model.StatementRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, job_id, payload, created_at FROM statements WHERE statement_type = $1 ORDER BY created_at`,
		string(t),
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list statements")
	}
	defer rows.Close()

	var records []model.StatementRecord
	for rows.Next() {
		var (
			rec     model.StatementRecord
			payload []byte
		)
		if err := rows.Scan(&rec.ID, &rec.JobID, &payload, &rec.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan statement")
		}
		var stmt model.Statement
		if err := json.Unmarshal(payload, &stmt); err != nil {
			return nil, eris.Wrapf(err, "postgres: unmarshal statement %s", rec.ID)
		}
		rec.Statement = &stmt
		records = append(records, rec)
	}
	return records, eris.Wrap(rows.Err(), "postgres: iterate statements")
}

func scanPgJob(row pgx.Row) (*model.Job, error) {
	var (
		job    model.Job
		typ    string
		status string
		errMsg *string
	)
	if err := row.Scan(&job.ID, &typ, &job.InputPath, &status, &job.Attempts, &errMsg, &job.CreatedAt, &job.UpdatedAt); err != nil {
		return nil, eris.Wrap(err, "postgres: scan job")
	}
	job.StatementType = model.StatementType(typ)
	job.Status = model.JobStatus(status)
	if errMsg != nil {
		job.Error = *errMsg
	}
	return &job, nil
}

func scanPgJobs(rows pgx.Rows) ([]model.Job, error) {
	var jobs []model.Job
	for rows.Next() {
		job, err := scanPgJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, eris.Wrap(rows.Err(), "postgres: iterate jobs")
}

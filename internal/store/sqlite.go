package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/statement-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS jobs (
	id             TEXT PRIMARY KEY,
	statement_type TEXT NOT NULL,
	input_path     TEXT NOT NULL,
	status         TEXT NOT NULL DEFAULT 'queued',
	attempts       INTEGER NOT NULL DEFAULT 0,
	error          TEXT,
	created_at     DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at     DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS statements (
	id             TEXT PRIMARY KEY,
	job_id         TEXT NOT NULL REFERENCES jobs(id),
	statement_type TEXT NOT NULL,
	payload        TEXT NOT NULL,
	created_at     DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status);
CREATE INDEX IF NOT EXISTS idx_jobs_type ON jobs(statement_type);
CREATE INDEX IF NOT EXISTS idx_statements_type ON statements(statement_type);
CREATE INDEX IF NOT EXISTS idx_statements_job_id ON statements(job_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) EnqueueJob(ctx context.Context, t model.StatementType, inputPath string) (*model.Job, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO jobs (id, statement_type, input_path, status, attempts, created_at, updated_at) VALUES (?, ?, ?, ?, 0, ?, ?)`,
		id, string(t), inputPath, string(model.JobStatusQueued), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert job")
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

// ClaimJobs atomically moves up to limit queued jobs to running and returns
// them. Concurrent workers never claim the same job twice.
func (s *SQLiteStore) ClaimJobs(ctx context.Context, limit int) ([]model.Job, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: begin claim")
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx,
		`SELECT id, statement_type, input_path, status, attempts, error, created_at, updated_at
		 FROM jobs WHERE status = ? ORDER BY created_at LIMIT ?`,
		string(model.JobStatusQueued), limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: select queued jobs")
	}
	jobs, err := scanJobs(rows)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for i := range jobs {
		if _, err := tx.ExecContext(ctx,
			`UPDATE jobs SET status = ?, updated_at = ? WHERE id = ?`,
			string(model.JobStatusRunning), now, jobs[i].ID,
		); err != nil {
			return nil, eris.Wrapf(err, "sqlite: claim job %s", jobs[i].ID)
		}
		jobs[i].Status = model.JobStatusRunning
		jobs[i].UpdatedAt = now
	}

	if err := tx.Commit(); err != nil {
		return nil, eris.Wrap(err, "sqlite: commit claim")
	}
	return jobs, nil
}

func (s *SQLiteStore) CompleteJob(ctx context.Context, jobID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE jobs SET status = ?, error = NULL, updated_at = ? WHERE id = ?`,
		string(model.JobStatusComplete), time.Now().UTC(), jobID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: complete job %s", jobID)
	}
	return checkRowsAffected(res, "job", jobID)
}

// FailJob records a failed attempt. Non-terminal failures requeue the job
// for another try; terminal failures park it in the failed state.
func (s *SQLiteStore) FailJob(ctx context.Context, jobID string, attempts int, errMsg string, terminal bool) error {
	status := model.JobStatusQueued
	if terminal {
		status = model.JobStatusFailed
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE jobs SET status = ?, attempts = ?, error = ?, updated_at = ? WHERE id = ?`,
		string(status), attempts, errMsg, time.Now().UTC(), jobID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: fail job %s", jobID)
	}
	return checkRowsAffected(res, "job", jobID)
}

func (s *SQLiteStore) GetJob(ctx context.Context, jobID string) (*model.Job, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, statement_type, input_path, status, attempts, error, created_at, updated_at FROM jobs WHERE id = ?`,
		jobID,
	)
	job, err := scanJob(row)
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (s *SQLiteStore) ListJobs(ctx context.Context, filter JobFilter) ([]model.Job, error) {
	query := `SELECT id, statement_type, input_path, status, attempts, error, created_at, updated_at FROM jobs WHERE 1=1`
	var args []any

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	if filter.StatementType != "" {
		query += ` AND statement_type = ?`
		args = append(args, string(filter.StatementType))
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list jobs")
	}
	return scanJobs(rows)
}

func (s *SQLiteStore) SaveStatement(ctx context.Context, jobID string, stmt *model.Statement) (*model.StatementRecord, error) {
	payload, err := json.Marshal(stmt)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal statement")
	}

	id := uuid.New().String()
	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO statements (id, job_id, statement_type, payload, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, jobID, string(stmt.StatementType), string(payload), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert statement")
	}

	return &model.StatementRecord{ID: id, JobID: jobID, Statement: stmt, CreatedAt: now}, nil
}

func (s *SQLiteStore) ListStatements(ctx context.Context, t model.StatementType) ([]model.StatementRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, job_id, payload, created_at FROM statements WHERE statement_type = ? ORDER BY created_at`,
		string(t),
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list statements")
	}
	defer rows.Close()

	var records []model.StatementRecord
	for rows.Next() {
		var (
			rec     model.StatementRecord
			payload string
		)
		if err := rows.Scan(&rec.ID, &rec.JobID, &payload, &rec.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan statement")
		}
		var stmt model.Statement
		if err := json.Unmarshal([]byte(payload), &stmt); err != nil {
			return nil, eris.Wrapf(err, "sqlite: unmarshal statement %s", rec.ID)
		}
		rec.Statement = &stmt
		records = append(records, rec)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: iterate statements")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*model.Job, error) {
	var (
		job    model.Job
		typ    string
		status string
		errMsg sql.NullString
	)
	if err := row.Scan(&job.ID, &typ, &job.InputPath, &status, &job.Attempts, &errMsg, &job.CreatedAt, &job.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, eris.Wrap(err, "sqlite: job not found")
		}
		return nil, eris.Wrap(err, "sqlite: scan job")
	}
	job.StatementType = model.StatementType(typ)
	job.Status = model.JobStatus(status)
	job.Error = errMsg.String
	return &job, nil
}

func scanJobs(rows *sql.Rows) ([]model.Job, error) {
	defer rows.Close()
	var jobs []model.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, eris.Wrap(rows.Err(), "sqlite: iterate jobs")
}

func checkRowsAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrapf(err, "sqlite: rows affected for %s %s", kind, id)
	}
	if n == 0 {
		return eris.Errorf("sqlite: %s %s not found", kind, id)
	}
	return nil
}

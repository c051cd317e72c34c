package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/statement-cli/internal/config"
	"github.com/sells-group/statement-cli/internal/model"
	"github.com/sells-group/statement-cli/internal/parse"
	"github.com/sells-group/statement-cli/internal/store"
)

// Worker polls the store for queued extraction jobs and runs them with a
// fixed concurrency limit. Parsing itself is pure computation; the only
// suspension points are the store reads and writes around it, so jobs are
// safe to re-run from scratch on retry.
type Worker struct {
	store store.Store
	cfg   config.WorkerConfig
}

// New creates a Worker, applying defaults for unset config fields.
func New(st store.Store, cfg config.WorkerConfig) *Worker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.PollSecs <= 0 {
		cfg.PollSecs = 5
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 20
	}
	return &Worker{store: st, cfg: cfg}
}

// Run polls for queued jobs until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Duration(w.cfg.PollSecs) * time.Second)
	defer ticker.Stop()

	zap.L().Info("worker started",
		zap.Int("concurrency", w.cfg.Concurrency),
		zap.Int("poll_secs", w.cfg.PollSecs),
	)

	for {
		if _, err := w.RunOnce(ctx); err != nil {
			zap.L().Error("worker poll failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			zap.L().Info("worker stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// RunOnce claims one batch of queued jobs and processes it to completion.
// Returns the number of jobs processed. Individual job failures do not
// abort the batch.
func (w *Worker) RunOnce(ctx context.Context) (int, error) {
	jobs, err := w.store.ClaimJobs(ctx, w.cfg.BatchSize)
	if err != nil {
		return 0, eris.Wrap(err, "worker: claim jobs")
	}
	if len(jobs) == 0 {
		return 0, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.cfg.Concurrency)

	var succeeded, failed atomic.Int64
	for _, job := range jobs {
		g.Go(func() error {
			if err := w.processJob(gctx, job); err != nil {
				failed.Add(1)
			} else {
				succeeded.Add(1)
			}
			return nil // individual failure never aborts the batch
		})
	}
	if err := g.Wait(); err != nil {
		return len(jobs), eris.Wrap(err, "worker: batch")
	}

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return len(jobs), nil
}

// processJob parses one job's input file and persists the result. A failed
// attempt requeues the job until the attempt budget is spent, after which
// the job parks in the terminal failed state.
func (w *Worker) processJob(ctx context.Context, job model.Job) error {
	log := zap.L().With(
		zap.String("job_id", job.ID),
		zap.String("statement_type", string(job.StatementType)),
		zap.String("input", job.InputPath),
	)

	stmt, err := w.runParse(job)
	if err != nil {
		attempts := job.Attempts + 1
		terminal := attempts >= w.cfg.MaxAttempts
		log.Error("job failed",
			zap.Int("attempts", attempts),
			zap.Bool("terminal", terminal),
			zap.Error(err),
		)
		if failErr := w.store.FailJob(ctx, job.ID, attempts, err.Error(), terminal); failErr != nil {
			log.Error("failed to record job failure", zap.Error(failErr))
		}
		return err
	}

	// Store writes retry on transient contention (SQLite busy, pool churn).
	retryCfg := DefaultRetryConfig()
	retryCfg.OnRetry = retryLogger("save statement")
	if err := Retry(ctx, retryCfg, func(ctx context.Context) error {
		_, saveErr := w.store.SaveStatement(ctx, job.ID, stmt)
		return saveErr
	}); err != nil {
		return eris.Wrapf(err, "worker: save statement for job %s", job.ID)
	}
	if err := w.store.CompleteJob(ctx, job.ID); err != nil {
		return eris.Wrapf(err, "worker: complete job %s", job.ID)
	}

	log.Info("job complete",
		zap.Int("line_items", len(stmt.LineItems)),
		zap.Int("periods", len(stmt.ReportingPeriods)),
	)
	return nil
}

func (w *Worker) runParse(job model.Job) (*model.Statement, error) {
	parser, err := parse.ParserFor(job.StatementType)
	if err != nil {
		return nil, err
	}
	return parser.ParseFile(job.InputPath)
}

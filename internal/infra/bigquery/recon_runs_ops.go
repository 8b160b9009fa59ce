package bigquery

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/dvloznov/retail-recon/internal/engine"
)

// StartRun creates a recon_runs row with status=RUNNING and returns the
// new run id.
func (p *Publisher) StartRun(ctx context.Context, sourceURI string) (string, error) {
	runID := uuid.NewString()
	started := time.Now()

	q := p.client.Query(fmt.Sprintf(`
		INSERT %s.%s (
			run_id,
			source_uri,
			run_date,
			started_ts,
			status
		)
		VALUES (
			@run_id,
			@source_uri,
			@run_date,
			@started_ts,
			@status
		)
	`, p.dataset, ReconRunsTable))

	q.Parameters = []bigquery.QueryParameter{
		{Name: "run_id", Value: runID},
		{Name: "source_uri", Value: sourceURI},
		{Name: "run_date", Value: civil.DateOf(started)},
		{Name: "started_ts", Value: started},
		{Name: "status", Value: "RUNNING"},
	}

	if err := p.runQuery(ctx, q); err != nil {
		return "", fmt.Errorf("StartRun: %w", err)
	}
	return runID, nil
}

// MarkRunSucceeded sets status=SUCCESS, the finish timestamp and the
// run counters.
func (p *Publisher) MarkRunSucceeded(ctx context.Context, runID string, s engine.Summary) error {
	q := p.client.Query(fmt.Sprintf(`
		UPDATE %s.%s
		SET status = @status,
		    finished_ts = @finished_ts,
		    error_message = "",
		    total_transactions = @total,
		    matched = @matched,
		    unmatched = @unmatched,
		    exceptions = @exceptions
		WHERE run_id = @run_id
	`, p.dataset, ReconRunsTable))

	q.Parameters = []bigquery.QueryParameter{
		{Name: "status", Value: "SUCCESS"},
		{Name: "finished_ts", Value: time.Now()},
		{Name: "total", Value: int64(s.Total)},
		{Name: "matched", Value: int64(s.Matched)},
		{Name: "unmatched", Value: int64(s.Unmatched)},
		{Name: "exceptions", Value: int64(s.Exceptions)},
		{Name: "run_id", Value: runID},
	}

	if err := p.runQuery(ctx, q); err != nil {
		return fmt.Errorf("MarkRunSucceeded: %w", err)
	}
	return nil
}

// MarkRunFailed sets status=FAILED with the error message. Failures to
// record the failure are logged, not returned, so they never mask the
// original error.
func (p *Publisher) MarkRunFailed(ctx context.Context, runID string, runErr error) {
	errMsg := ""
	if runErr != nil {
		errMsg = runErr.Error()
		const maxLen = 2000
		if len(errMsg) > maxLen {
			errMsg = errMsg[:maxLen]
		}
	}

	q := p.client.Query(fmt.Sprintf(`
		UPDATE %s.%s
		SET status = @status,
		    finished_ts = @finished_ts,
		    error_message = @error_message
		WHERE run_id = @run_id
	`, p.dataset, ReconRunsTable))

	q.Parameters = []bigquery.QueryParameter{
		{Name: "status", Value: "FAILED"},
		{Name: "finished_ts", Value: time.Now()},
		{Name: "error_message", Value: errMsg},
		{Name: "run_id", Value: runID},
	}

	if err := p.runQuery(ctx, q); err != nil {
		log.Printf("MarkRunFailed: recording failure for run %s: %v", runID, err)
	}
}

func (p *Publisher) runQuery(ctx context.Context, q *bigquery.Query) error {
	job, err := q.Run(ctx)
	if err != nil {
		return fmt.Errorf("running query: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("waiting for job: %w", err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("job error: %w", err)
	}
	return nil
}

package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/dvloznov/retail-recon/internal/engine"
)

// Publisher writes reconciliation run outputs into a BigQuery dataset.
type Publisher struct {
	client  *bigquery.Client
	dataset string
}

// NewPublisher creates a Publisher for the given project and dataset.
func NewPublisher(ctx context.Context, projectID, dataset string) (*Publisher, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("NewPublisher: bigquery client: %w", err)
	}
	return &Publisher{client: client, dataset: dataset}, nil
}

// NewPublisherWithClient creates a Publisher using the provided client.
func NewPublisherWithClient(client *bigquery.Client, dataset string) *Publisher {
	return &Publisher{client: client, dataset: dataset}
}

// Close releases the underlying client.
func (p *Publisher) Close() error {
	return p.client.Close()
}

// PublishResult inserts all six output tables of a run.
func (p *Publisher) PublishResult(ctx context.Context, runID string, result *engine.Result) error {
	if err := p.insert(ctx, TransactionsTable, TransactionRows(runID, result.Transactions)); err != nil {
		return err
	}
	if err := p.insert(ctx, MasterRecordsTable, MasterRows(runID, result.Master)); err != nil {
		return err
	}
	if err := p.insert(ctx, RulesTable, RuleRows(result.Rules)); err != nil {
		return err
	}
	if err := p.insert(ctx, QualityTable, QualityRows(runID, result.Quality)); err != nil {
		return err
	}
	if err := p.insert(ctx, ReconciliationTable, ReconciliationRows(runID, result.Reconciled)); err != nil {
		return err
	}
	if err := p.insert(ctx, ExceptionsTable, ExceptionRows(runID, result.Exceptions)); err != nil {
		return err
	}
	return nil
}

func (p *Publisher) insert(ctx context.Context, table string, rows interface{}) error {
	inserter := p.client.Dataset(p.dataset).Table(table).Inserter()
	if err := inserter.Put(ctx, rows); err != nil {
		return fmt.Errorf("insert into %s.%s: %w", p.dataset, table, err)
	}
	return nil
}

// ExceptionCountsByRule returns, per rule, how many exceptions a run
// produced.
func (p *Publisher) ExceptionCountsByRule(ctx context.Context, runID string) (map[string]int64, error) {
	q := p.client.Query(fmt.Sprintf(`
		SELECT rule_id, COUNT(*) AS n
		FROM %s.%s
		WHERE run_id = @run_id
		GROUP BY rule_id
		ORDER BY rule_id
	`, p.dataset, ExceptionsTable))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "run_id", Value: runID},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ExceptionCountsByRule: running query: %w", err)
	}

	counts := make(map[string]int64)
	for {
		var row struct {
			RuleID string `bigquery:"rule_id"`
			N      int64  `bigquery:"n"`
		}
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ExceptionCountsByRule: reading row: %w", err)
		}
		counts[row.RuleID] = row.N
	}
	return counts, nil
}

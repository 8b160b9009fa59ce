package bigquery

import (
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
)

// Table names of the reconciliation dataset.
const (
	ReconRunsTable      = "recon_runs"
	TransactionsTable   = "transactions"
	MasterRecordsTable  = "master_records"
	RulesTable          = "reconciliation_rules"
	QualityTable        = "data_quality_report"
	ReconciliationTable = "reconciliation_results"
	ExceptionsTable     = "exceptions_report"
)

// ReconRunRow tracks one engine run end to end.
type ReconRunRow struct {
	RunID     string     `bigquery:"run_id"`     // REQUIRED
	SourceURI string     `bigquery:"source_uri"` // NULLABLE
	RunDate   civil.Date `bigquery:"run_date"`   // REQUIRED, partition column

	StartedTS  time.Time              `bigquery:"started_ts"`  // REQUIRED
	FinishedTS bigquery.NullTimestamp `bigquery:"finished_ts"` // NULLABLE

	Status       string `bigquery:"status"`        // RUNNING / SUCCESS / FAILED
	ErrorMessage string `bigquery:"error_message"` // NULLABLE

	TotalTransactions bigquery.NullInt64 `bigquery:"total_transactions"` // NULLABLE
	Matched           bigquery.NullInt64 `bigquery:"matched"`            // NULLABLE
	Unmatched         bigquery.NullInt64 `bigquery:"unmatched"`          // NULLABLE
	Exceptions        bigquery.NullInt64 `bigquery:"exceptions"`         // NULLABLE
}

// TransactionRow is one canonical transaction as stored.
type TransactionRow struct {
	RunID string `bigquery:"run_id"` // REQUIRED
	TxnID string `bigquery:"txn_id"` // REQUIRED

	CustomerID bigquery.NullString    `bigquery:"customer_id"` // NULLABLE
	Amount     bigquery.NullFloat64   `bigquery:"amount"`      // NULLABLE
	TxnDate    bigquery.NullTimestamp `bigquery:"txn_date"`    // NULLABLE

	Invoice     string `bigquery:"invoice"`
	StockCode   string `bigquery:"stockcode"`
	Description string `bigquery:"description"`
	Country     string `bigquery:"country"`
}

// MasterRecordRow is one known customer account as stored.
type MasterRecordRow struct {
	RunID         string `bigquery:"run_id"`
	CustomerID    string `bigquery:"customer_id"`
	CustomerName  string `bigquery:"customer_name"`
	AccountStatus string `bigquery:"account_status"`
}

// RuleRow is one static rule definition as stored.
type RuleRow struct {
	RuleID      string `bigquery:"rule_id"`
	Description string `bigquery:"description"`
	Severity    string `bigquery:"severity"`
}

// QualityRow is one data-quality finding as stored.
type QualityRow struct {
	RunID      string    `bigquery:"run_id"`
	ColumnName string    `bigquery:"column_name"`
	NullCount  int64     `bigquery:"null_count"`
	TableName  string    `bigquery:"table_name"`
	Timestamp  time.Time `bigquery:"ts"`
}

// ReconciliationRow is one reconciled transaction as stored.
type ReconciliationRow struct {
	RunID string `bigquery:"run_id"`
	TxnID string `bigquery:"txn_id"`

	CustomerID bigquery.NullString    `bigquery:"customer_id"`
	Amount     bigquery.NullFloat64   `bigquery:"amount"`
	TxnDate    bigquery.NullTimestamp `bigquery:"txn_date"`

	Invoice     string `bigquery:"invoice"`
	StockCode   string `bigquery:"stockcode"`
	Description string `bigquery:"description"`
	Country     string `bigquery:"country"`

	CustomerName  bigquery.NullString `bigquery:"customer_name"`
	AccountStatus bigquery.NullString `bigquery:"account_status"`
	MatchStatus   string              `bigquery:"match_status"`
}

// ExceptionRow is one rule violation as stored.
type ExceptionRow struct {
	RunID       string              `bigquery:"run_id"`
	RuleID      string              `bigquery:"rule_id"`
	Description string              `bigquery:"description"`
	TxnID       string              `bigquery:"txn_id"`
	CustomerID  bigquery.NullString `bigquery:"customer_id"`
	Severity    string              `bigquery:"severity"`
}

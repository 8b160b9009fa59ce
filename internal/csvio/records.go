package csvio

import (
	"strconv"
	"time"

	"github.com/dvloznov/retail-recon/internal/engine"
)

// timeLayout is the second-resolution layout used for output timestamps.
const timeLayout = "2006-01-02 15:04:05"

// TransactionRecord is one row of transactions.csv.
type TransactionRecord struct {
	TxnID       string `csv:"txn_id"`
	CustomerID  string `csv:"customer_id"`
	Amount      string `csv:"amount"`
	TxnDate     string `csv:"txn_date"`
	Invoice     string `csv:"invoice"`
	StockCode   string `csv:"stockcode"`
	Description string `csv:"description"`
	Country     string `csv:"country"`
}

// CustomerRecord is one row of master_records.csv.
type CustomerRecord struct {
	CustomerID    string `csv:"customer_id"`
	CustomerName  string `csv:"customer_name"`
	AccountStatus string `csv:"account_status"`
}

// RuleRecord is one row of reconciliation_rules.csv.
type RuleRecord struct {
	RuleID      string `csv:"rule_id"`
	Description string `csv:"description"`
	Severity    string `csv:"severity"`
}

// QualityRecord is one row of data_quality_report.csv.
type QualityRecord struct {
	Column    string `csv:"column"`
	NullCount int    `csv:"null_count"`
	Table     string `csv:"table"`
	Timestamp string `csv:"timestamp"`
}

// ReconciliationRecord is one row of reconciliation_results.csv:
// transaction fields, then the joined master fields (empty when
// unmatched), then the match status.
type ReconciliationRecord struct {
	TxnID         string `csv:"txn_id"`
	CustomerID    string `csv:"customer_id"`
	Amount        string `csv:"amount"`
	TxnDate       string `csv:"txn_date"`
	Invoice       string `csv:"invoice"`
	StockCode     string `csv:"stockcode"`
	Description   string `csv:"description"`
	Country       string `csv:"country"`
	CustomerName  string `csv:"customer_name"`
	AccountStatus string `csv:"account_status"`
	MatchStatus   string `csv:"match_status"`
}

// ExceptionRecord is one row of exceptions_report.csv.
type ExceptionRecord struct {
	RuleID      string `csv:"rule_id"`
	Description string `csv:"description"`
	TxnID       string `csv:"txn_id"`
	CustomerID  string `csv:"customer_id"`
	Severity    string `csv:"severity"`
}

// TransactionRecords maps engine transactions to their CSV rows.
func TransactionRecords(txns []*engine.Transaction) []*TransactionRecord {
	out := make([]*TransactionRecord, 0, len(txns))
	for _, t := range txns {
		out = append(out, &TransactionRecord{
			TxnID:       t.TxnID,
			CustomerID:  deref(t.CustomerID),
			Amount:      formatAmount(t.Amount),
			TxnDate:     formatTime(t.TxnDate),
			Invoice:     t.Invoice,
			StockCode:   t.StockCode,
			Description: t.Description,
			Country:     t.Country,
		})
	}
	return out
}

// CustomerRecords maps master records to their CSV rows.
func CustomerRecords(master []*engine.MasterRecord) []*CustomerRecord {
	out := make([]*CustomerRecord, 0, len(master))
	for _, m := range master {
		out = append(out, &CustomerRecord{
			CustomerID:    m.CustomerID,
			CustomerName:  m.CustomerName,
			AccountStatus: m.AccountStatus,
		})
	}
	return out
}

// RuleRecords maps the static rule table to its CSV rows.
func RuleRecords(rules []engine.Rule) []*RuleRecord {
	out := make([]*RuleRecord, 0, len(rules))
	for _, r := range rules {
		out = append(out, &RuleRecord{
			RuleID:      r.RuleID,
			Description: r.Description,
			Severity:    string(r.Severity),
		})
	}
	return out
}

// QualityRecords maps the quality report findings to their CSV rows.
func QualityRecords(report *engine.QualityReport) []*QualityRecord {
	out := make([]*QualityRecord, 0, len(report.Findings))
	for _, f := range report.Findings {
		out = append(out, &QualityRecord{
			Column:    f.Column,
			NullCount: f.NullCount,
			Table:     f.Table,
			Timestamp: f.Timestamp.Format(timeLayout),
		})
	}
	return out
}

// ReconciliationRecords maps reconciled rows to their CSV rows.
func ReconciliationRecords(rows []*engine.ReconciledTransaction) []*ReconciliationRecord {
	out := make([]*ReconciliationRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, &ReconciliationRecord{
			TxnID:         r.TxnID,
			CustomerID:    deref(r.CustomerID),
			Amount:        formatAmount(r.Amount),
			TxnDate:       formatTime(r.TxnDate),
			Invoice:       r.Invoice,
			StockCode:     r.StockCode,
			Description:   r.Description,
			Country:       r.Country,
			CustomerName:  deref(r.CustomerName),
			AccountStatus: deref(r.AccountStatus),
			MatchStatus:   string(r.MatchStatus),
		})
	}
	return out
}

// ExceptionRecords maps exceptions to their CSV rows.
func ExceptionRecords(excs []*engine.Exception) []*ExceptionRecord {
	out := make([]*ExceptionRecord, 0, len(excs))
	for _, e := range excs {
		out = append(out, &ExceptionRecord{
			RuleID:      e.RuleID,
			Description: e.Description,
			TxnID:       e.TxnID,
			CustomerID:  deref(e.CustomerID),
			Severity:    string(e.Severity),
		})
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatAmount(a *float64) string {
	if a == nil {
		return ""
	}
	return strconv.FormatFloat(*a, 'f', -1, 64)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timeLayout)
}

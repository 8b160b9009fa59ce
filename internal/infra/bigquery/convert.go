package bigquery

import (
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/dvloznov/retail-recon/internal/engine"
)

// TransactionRows maps engine transactions to their storage rows.
func TransactionRows(runID string, txns []*engine.Transaction) []*TransactionRow {
	out := make([]*TransactionRow, 0, len(txns))
	for _, t := range txns {
		out = append(out, &TransactionRow{
			RunID:       runID,
			TxnID:       t.TxnID,
			CustomerID:  nullString(t.CustomerID),
			Amount:      nullFloat(t.Amount),
			TxnDate:     nullTimestamp(t.TxnDate),
			Invoice:     t.Invoice,
			StockCode:   t.StockCode,
			Description: t.Description,
			Country:     t.Country,
		})
	}
	return out
}

// MasterRows maps master records to their storage rows.
func MasterRows(runID string, master []*engine.MasterRecord) []*MasterRecordRow {
	out := make([]*MasterRecordRow, 0, len(master))
	for _, m := range master {
		out = append(out, &MasterRecordRow{
			RunID:         runID,
			CustomerID:    m.CustomerID,
			CustomerName:  m.CustomerName,
			AccountStatus: m.AccountStatus,
		})
	}
	return out
}

// RuleRows maps the static rule table to its storage rows.
func RuleRows(rules []engine.Rule) []*RuleRow {
	out := make([]*RuleRow, 0, len(rules))
	for _, r := range rules {
		out = append(out, &RuleRow{
			RuleID:      r.RuleID,
			Description: r.Description,
			Severity:    string(r.Severity),
		})
	}
	return out
}

// QualityRows maps quality findings to their storage rows.
func QualityRows(runID string, report *engine.QualityReport) []*QualityRow {
	out := make([]*QualityRow, 0, len(report.Findings))
	for _, f := range report.Findings {
		out = append(out, &QualityRow{
			RunID:      runID,
			ColumnName: f.Column,
			NullCount:  int64(f.NullCount),
			TableName:  f.Table,
			Timestamp:  f.Timestamp,
		})
	}
	return out
}

// ReconciliationRows maps reconciled transactions to their storage rows.
func ReconciliationRows(runID string, rows []*engine.ReconciledTransaction) []*ReconciliationRow {
	out := make([]*ReconciliationRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, &ReconciliationRow{
			RunID:         runID,
			TxnID:         r.TxnID,
			CustomerID:    nullString(r.CustomerID),
			Amount:        nullFloat(r.Amount),
			TxnDate:       nullTimestamp(r.TxnDate),
			Invoice:       r.Invoice,
			StockCode:     r.StockCode,
			Description:   r.Description,
			Country:       r.Country,
			CustomerName:  nullString(r.CustomerName),
			AccountStatus: nullString(r.AccountStatus),
			MatchStatus:   string(r.MatchStatus),
		})
	}
	return out
}

// ExceptionRows maps exceptions to their storage rows.
func ExceptionRows(runID string, excs []*engine.Exception) []*ExceptionRow {
	out := make([]*ExceptionRow, 0, len(excs))
	for _, e := range excs {
		out = append(out, &ExceptionRow{
			RunID:       runID,
			RuleID:      e.RuleID,
			Description: e.Description,
			TxnID:       e.TxnID,
			CustomerID:  nullString(e.CustomerID),
			Severity:    string(e.Severity),
		})
	}
	return out
}

func nullString(s *string) bigquery.NullString {
	if s == nil {
		return bigquery.NullString{}
	}
	return bigquery.NullString{StringVal: *s, Valid: true}
}

func nullFloat(f *float64) bigquery.NullFloat64 {
	if f == nil {
		return bigquery.NullFloat64{}
	}
	return bigquery.NullFloat64{Float64: *f, Valid: true}
}

func nullTimestamp(t *time.Time) bigquery.NullTimestamp {
	if t == nil {
		return bigquery.NullTimestamp{}
	}
	return bigquery.NullTimestamp{Timestamp: *t, Valid: true}
}

package engine

import (
	"time"
)

// Column order of the two audited tables, matching their output contracts.
var (
	transactionColumns = []string{"txn_id", "customer_id", "amount", "txn_date", "invoice", "stockcode", "description", "country"}
	masterColumns      = []string{"customer_id", "customer_name", "account_status"}
)

// Audit computes per-column null counts over both entity sets and the
// duplicate-key diagnostics. It has no side effects and is independent
// of the reconciliation itself; every finding carries the single run
// timestamp passed in.
func Audit(txns []*Transaction, master []*MasterRecord, now time.Time) *QualityReport {
	txnNulls := make(map[string]int, len(transactionColumns))
	txnIDs := make([]string, 0, len(txns))
	for _, t := range txns {
		countIfEmpty(txnNulls, "txn_id", t.TxnID)
		if t.CustomerID == nil {
			txnNulls["customer_id"]++
		}
		if t.Amount == nil {
			txnNulls["amount"]++
		}
		if t.TxnDate == nil {
			txnNulls["txn_date"]++
		}
		countIfEmpty(txnNulls, "invoice", t.Invoice)
		countIfEmpty(txnNulls, "stockcode", t.StockCode)
		countIfEmpty(txnNulls, "description", t.Description)
		countIfEmpty(txnNulls, "country", t.Country)
		txnIDs = append(txnIDs, t.TxnID)
	}

	masterNulls := make(map[string]int, len(masterColumns))
	masterIDs := make([]string, 0, len(master))
	for _, m := range master {
		countIfEmpty(masterNulls, "customer_id", m.CustomerID)
		countIfEmpty(masterNulls, "customer_name", m.CustomerName)
		countIfEmpty(masterNulls, "account_status", m.AccountStatus)
		masterIDs = append(masterIDs, m.CustomerID)
	}

	report := &QualityReport{}
	for _, col := range masterColumns {
		report.Findings = append(report.Findings, Finding{
			Column:    col,
			NullCount: masterNulls[col],
			Table:     TableMasterRecords,
			Timestamp: now,
		})
	}
	for _, col := range transactionColumns {
		report.Findings = append(report.Findings, Finding{
			Column:    col,
			NullCount: txnNulls[col],
			Table:     TableTransactions,
			Timestamp: now,
		})
	}
	report.DuplicateMasterIDs = duplicates(masterIDs)
	report.DuplicateTxnIDs = duplicates(txnIDs)
	return report
}

func countIfEmpty(counts map[string]int, col, value string) {
	if value == "" {
		counts[col]++
	}
}

// duplicates returns the keys appearing more than once, in first-seen order.
func duplicates(keys []string) []string {
	counts := make(map[string]int, len(keys))
	order := make([]string, 0, len(keys))
	for _, k := range keys {
		if counts[k] == 0 {
			order = append(order, k)
		}
		counts[k]++
	}
	var dups []string
	for _, k := range order {
		if counts[k] > 1 {
			dups = append(dups, k)
		}
	}
	return dups
}

package engine

import (
	"testing"
	"time"
)

func findingFor(t *testing.T, report *QualityReport, table, column string) Finding {
	t.Helper()
	for _, f := range report.Findings {
		if f.Table == table && f.Column == column {
			return f
		}
	}
	t.Fatalf("no finding for %s.%s", table, column)
	return Finding{}
}

func TestAudit_NullCounts(t *testing.T) {
	now := time.Date(2011, 12, 9, 12, 0, 0, 0, time.UTC)
	date := time.Date(2010, 12, 1, 8, 26, 0, 0, time.UTC)
	txns := []*Transaction{
		{TxnID: "A-0", CustomerID: strPtr("7"), Amount: floatPtr(6), TxnDate: &date, Invoice: "A", StockCode: "S1", Description: "thing", Country: "UK"},
		{TxnID: "A-1", CustomerID: nil, Amount: nil, TxnDate: nil, Invoice: "A", StockCode: "", Description: "", Country: "UK"},
		{TxnID: "A-2", CustomerID: nil, Amount: floatPtr(-5), TxnDate: &date, Invoice: "A", StockCode: "S2", Description: "other", Country: ""},
	}
	master := []*MasterRecord{
		{CustomerID: "7", CustomerName: "cust_7", AccountStatus: AccountStatusActive},
	}

	report := Audit(txns, master, now)

	wantTxnNulls := map[string]int{
		"txn_id": 0, "customer_id": 2, "amount": 1, "txn_date": 1,
		"invoice": 0, "stockcode": 1, "description": 1, "country": 1,
	}
	for col, want := range wantTxnNulls {
		f := findingFor(t, report, TableTransactions, col)
		if f.NullCount != want {
			t.Errorf("transactions.%s null count = %d, want %d", col, f.NullCount, want)
		}
		if !f.Timestamp.Equal(now) {
			t.Errorf("transactions.%s timestamp = %v, want %v", col, f.Timestamp, now)
		}
	}
	for _, col := range []string{"customer_id", "customer_name", "account_status"} {
		if f := findingFor(t, report, TableMasterRecords, col); f.NullCount != 0 {
			t.Errorf("master_records.%s null count = %d, want 0", col, f.NullCount)
		}
	}
	if got, want := len(report.Findings), len(transactionColumns)+len(masterColumns); got != want {
		t.Errorf("got %d findings, want %d", got, want)
	}
}

func TestAudit_DuplicateDiagnostics(t *testing.T) {
	txns := []*Transaction{
		{TxnID: "A-0"},
		{TxnID: "A-0"},
		{TxnID: "A-1"},
	}
	master := []*MasterRecord{
		{CustomerID: "7"},
		{CustomerID: "8"},
		{CustomerID: "7"},
	}

	report := Audit(txns, master, time.Now())

	if len(report.DuplicateTxnIDs) != 1 || report.DuplicateTxnIDs[0] != "A-0" {
		t.Errorf("DuplicateTxnIDs = %v, want [A-0]", report.DuplicateTxnIDs)
	}
	if len(report.DuplicateMasterIDs) != 1 || report.DuplicateMasterIDs[0] != "7" {
		t.Errorf("DuplicateMasterIDs = %v, want [7]", report.DuplicateMasterIDs)
	}
}

func TestAudit_CleanSetsHaveNoDuplicates(t *testing.T) {
	report := Audit(
		[]*Transaction{{TxnID: "A-0"}, {TxnID: "A-1"}},
		[]*MasterRecord{{CustomerID: "1"}, {CustomerID: "2"}},
		time.Now(),
	)
	if len(report.DuplicateTxnIDs) != 0 || len(report.DuplicateMasterIDs) != 0 {
		t.Errorf("expected no duplicates, got txn=%v master=%v", report.DuplicateTxnIDs, report.DuplicateMasterIDs)
	}
}

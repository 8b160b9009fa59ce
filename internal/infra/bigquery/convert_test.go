package bigquery

import (
	"testing"
	"time"

	"github.com/dvloznov/retail-recon/internal/engine"
)

func strPtr(s string) *string        { return &s }
func floatPtr(f float64) *float64    { return &f }
func timePtr(t time.Time) *time.Time { return &t }

func TestNullHelpers(t *testing.T) {
	if got := nullString(nil); got.Valid {
		t.Errorf("nullString(nil).Valid = true, want false")
	}
	if got := nullString(strPtr("17850")); !got.Valid || got.StringVal != "17850" {
		t.Errorf("nullString(17850) = %+v", got)
	}

	if got := nullFloat(nil); got.Valid {
		t.Errorf("nullFloat(nil).Valid = true, want false")
	}
	if got := nullFloat(floatPtr(-15.3)); !got.Valid || got.Float64 != -15.3 {
		t.Errorf("nullFloat(-15.3) = %+v", got)
	}

	if got := nullTimestamp(nil); got.Valid {
		t.Errorf("nullTimestamp(nil).Valid = true, want false")
	}
	ts := time.Date(2010, 12, 1, 8, 26, 0, 0, time.UTC)
	if got := nullTimestamp(timePtr(ts)); !got.Valid || !got.Timestamp.Equal(ts) {
		t.Errorf("nullTimestamp(%v) = %+v", ts, got)
	}
}

func TestTransactionRows(t *testing.T) {
	ts := time.Date(2010, 12, 1, 8, 26, 0, 0, time.UTC)
	txns := []*engine.Transaction{
		{
			TxnID:       "536365-0",
			CustomerID:  strPtr("17850"),
			Amount:      floatPtr(15.3),
			TxnDate:     timePtr(ts),
			Invoice:     "536365",
			StockCode:   "85123A",
			Description: "WHITE HANGING HEART T-LIGHT HOLDER",
			Country:     "United Kingdom",
		},
		{TxnID: "536365-1", Invoice: "536365"},
	}

	rows := TransactionRows("run-1", txns)
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}

	first := rows[0]
	if first.RunID != "run-1" || first.TxnID != "536365-0" {
		t.Errorf("row keys = %q/%q", first.RunID, first.TxnID)
	}
	if !first.CustomerID.Valid || first.CustomerID.StringVal != "17850" {
		t.Errorf("CustomerID = %+v", first.CustomerID)
	}
	if !first.Amount.Valid || first.Amount.Float64 != 15.3 {
		t.Errorf("Amount = %+v", first.Amount)
	}
	if !first.TxnDate.Valid || !first.TxnDate.Timestamp.Equal(ts) {
		t.Errorf("TxnDate = %+v", first.TxnDate)
	}

	second := rows[1]
	if second.CustomerID.Valid || second.Amount.Valid || second.TxnDate.Valid {
		t.Errorf("nil fields should map to invalid nullables: %+v", second)
	}
}

func TestQualityRows(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	report := &engine.QualityReport{
		Findings: []engine.Finding{
			{Column: "customer_id", NullCount: 3, Table: engine.TableMasterRecords, Timestamp: now},
			{Column: "amount", NullCount: 1, Table: engine.TableTransactions, Timestamp: now},
		},
	}

	rows := QualityRows("run-1", report)
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0].ColumnName != "customer_id" || rows[0].NullCount != 3 || rows[0].TableName != engine.TableMasterRecords {
		t.Errorf("rows[0] = %+v", rows[0])
	}
	if !rows[1].Timestamp.Equal(now) {
		t.Errorf("rows[1].Timestamp = %v, want %v", rows[1].Timestamp, now)
	}
}

func TestExceptionRows(t *testing.T) {
	excs := []*engine.Exception{
		{
			RuleID:      engine.RuleNegativeAmount,
			Description: "Negative transaction amount (return or cancellation)",
			TxnID:       "C536379-0",
			CustomerID:  strPtr("14527"),
			Severity:    engine.SeverityHigh,
		},
		{
			RuleID:      engine.RuleUnknownCustomer,
			Description: "Customer not found in master",
			TxnID:       "536365-2",
			Severity:    engine.SeverityBlocking,
		},
	}

	rows := ExceptionRows("run-1", excs)
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0].RuleID != engine.RuleNegativeAmount || rows[0].Severity != string(engine.SeverityHigh) {
		t.Errorf("rows[0] = %+v", rows[0])
	}
	if rows[1].CustomerID.Valid {
		t.Errorf("missing customer id should map to invalid nullable: %+v", rows[1].CustomerID)
	}
}

func TestRuleRows(t *testing.T) {
	rows := RuleRows(engine.Rules())
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}
	wantIDs := []string{engine.RuleUnknownCustomer, engine.RuleNegativeAmount, engine.RuleUnmatchedRecord}
	for i, id := range wantIDs {
		if rows[i].RuleID != id {
			t.Errorf("rows[%d].RuleID = %q, want %q", i, rows[i].RuleID, id)
		}
	}
}

package engine

import (
	"testing"
)

func TestReconcile_LeftJoin(t *testing.T) {
	txns := []*Transaction{
		{TxnID: "A-0", CustomerID: strPtr("7")},
		{TxnID: "A-1", CustomerID: nil},
		{TxnID: "A-2", CustomerID: strPtr("99")},
	}
	master := []*MasterRecord{
		{CustomerID: "7", CustomerName: "cust_7", AccountStatus: AccountStatusActive},
	}

	rows, err := Reconcile(txns, master)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	// Coverage: exactly one output row per transaction, in input order.
	if len(rows) != len(txns) {
		t.Fatalf("got %d reconciled rows, want %d", len(rows), len(txns))
	}
	for i, r := range rows {
		if r.TxnID != txns[i].TxnID {
			t.Errorf("rows[%d].TxnID = %q, want %q", i, r.TxnID, txns[i].TxnID)
		}
	}

	if rows[0].MatchStatus != MatchStatusMatched {
		t.Errorf("known customer: MatchStatus = %q, want MATCHED", rows[0].MatchStatus)
	}
	if rows[0].CustomerName == nil || *rows[0].CustomerName != "cust_7" {
		t.Errorf("matched row CustomerName = %v, want cust_7", rows[0].CustomerName)
	}
	if rows[0].AccountStatus == nil || *rows[0].AccountStatus != AccountStatusActive {
		t.Errorf("matched row AccountStatus = %v, want ACTIVE", rows[0].AccountStatus)
	}

	if rows[1].MatchStatus != MatchStatusUnmatched {
		t.Errorf("null customer: MatchStatus = %q, want UNMATCHED", rows[1].MatchStatus)
	}
	if rows[1].CustomerName != nil || rows[1].AccountStatus != nil {
		t.Error("unmatched row should carry no master fields")
	}

	if rows[2].MatchStatus != MatchStatusUnmatched {
		t.Errorf("unknown customer: MatchStatus = %q, want UNMATCHED", rows[2].MatchStatus)
	}
}

func TestReconcile_JoinCorrectness(t *testing.T) {
	txns := []*Transaction{
		{TxnID: "A-0", CustomerID: strPtr("1")},
		{TxnID: "A-1", CustomerID: strPtr("2")},
		{TxnID: "A-2", CustomerID: nil},
	}
	master := []*MasterRecord{{CustomerID: "1"}, {CustomerID: "2"}}

	rows, err := Reconcile(txns, master)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	known := map[string]bool{"1": true, "2": true}
	for _, r := range rows {
		wantMatched := r.CustomerID != nil && known[*r.CustomerID]
		gotMatched := r.MatchStatus == MatchStatusMatched
		if wantMatched != gotMatched {
			t.Errorf("row %s: matched=%v, want %v", r.TxnID, gotMatched, wantMatched)
		}
	}
}

func TestReconcile_DuplicateMasterKeyRejected(t *testing.T) {
	master := []*MasterRecord{
		{CustomerID: "7"},
		{CustomerID: "7"},
	}

	_, err := Reconcile([]*Transaction{{TxnID: "A-0", CustomerID: strPtr("7")}}, master)
	if err == nil {
		t.Fatal("expected error for duplicate master customer_id")
	}
}

func TestReconcile_EmptyInputs(t *testing.T) {
	rows, err := Reconcile(nil, nil)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows for empty input, want 0", len(rows))
	}
}

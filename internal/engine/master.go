package engine

import (
	"context"
)

// MasterProvider supplies the known-customer master set for a run.
//
// The default provider derives the set from the normalized transactions
// themselves, which makes the unknown-customer rule a structural no-op.
// A real deployment substitutes an independent authoritative source
// here without touching the reconciler or the rule evaluator.
type MasterProvider interface {
	Master(ctx context.Context, txns []*Transaction) ([]*MasterRecord, error)
}

// DerivedMaster builds master records from the distinct non-null
// customer identifiers observed in the transactions. Output is in
// first-seen order so downstream reports stay reproducible for a given
// feed.
type DerivedMaster struct{}

func (DerivedMaster) Master(_ context.Context, txns []*Transaction) ([]*MasterRecord, error) {
	seen := make(map[string]bool)
	records := make([]*MasterRecord, 0)
	for _, t := range txns {
		if t.CustomerID == nil || seen[*t.CustomerID] {
			continue
		}
		seen[*t.CustomerID] = true
		records = append(records, &MasterRecord{
			CustomerID:    *t.CustomerID,
			CustomerName:  "cust_" + *t.CustomerID,
			AccountStatus: AccountStatusActive,
		})
	}
	return records, nil
}

// StaticMaster serves a fixed master set, ignoring the transactions.
type StaticMaster struct {
	Records []*MasterRecord
}

func (s StaticMaster) Master(context.Context, []*Transaction) ([]*MasterRecord, error) {
	return s.Records, nil
}

package engine

import (
	"fmt"
)

// Reconcile left-joins transactions against the master set on customer
// id. Every transaction yields exactly one reconciled row, in input
// order: the join never drops and never fans out.
//
// Master uniqueness is a precondition of that guarantee, so a
// duplicated master key is rejected here instead of silently joining
// over it.
func Reconcile(txns []*Transaction, master []*MasterRecord) ([]*ReconciledTransaction, error) {
	byID := make(map[string]*MasterRecord, len(master))
	for _, m := range master {
		if _, dup := byID[m.CustomerID]; dup {
			return nil, fmt.Errorf("reconcile: duplicate customer_id %q in master set", m.CustomerID)
		}
		byID[m.CustomerID] = m
	}

	out := make([]*ReconciledTransaction, 0, len(txns))
	for _, t := range txns {
		r := &ReconciledTransaction{
			Transaction: *t,
			MatchStatus: MatchStatusUnmatched,
		}
		if t.CustomerID != nil {
			if m, ok := byID[*t.CustomerID]; ok {
				name := m.CustomerName
				status := m.AccountStatus
				r.CustomerName = &name
				r.AccountStatus = &status
				r.MatchStatus = MatchStatusMatched
			}
		}
		out = append(out, r)
	}
	return out, nil
}
